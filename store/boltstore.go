// Package store persists the ledger state between invocations in a bbolt
// database. The full service snapshot is split across buckets so external
// tooling can inspect positions, holdings and transfer requests without
// decoding one monolithic blob.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
	"go.etcd.io/bbolt"

	"github.com/secledger/libsecledger-go/asset"
	"github.com/secledger/libsecledger-go/token"
)

var (
	bucketMeta       = []byte("meta")
	bucketPositions  = []byte("positions")
	bucketHoldings   = []byte("holdings")
	bucketRequests   = []byte("requests")
	bucketSatellites = []byte("satellites")
)

var keyMeta = []byte("state")

// BoltStore wraps a bbolt database for ledger state storage.
type BoltStore struct {
	db *bbolt.DB
}

// OpenBoltStore opens or creates the bbolt database at dbPath. The parent
// directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("store: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketMeta, bucketPositions, bucketHoldings, bucketRequests, bucketSatellites} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("boltstore: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// metaRecord carries everything that is not a per-key record.
type metaRecord struct {
	Name                  string          `cbor:"name"`
	Symbol                string          `cbor:"symbol"`
	BaseURI               string          `cbor:"base_uri"`
	Address               asset.Address   `cbor:"address"`
	Governance            cbor.RawMessage `cbor:"governance"`
	ImplementationVersion string          `cbor:"implementation_version,omitempty"`
	SatelliteImpls        []asset.Address `cbor:"satellite_impls"`
}

// encodeCBOR serializes a value.
func encodeCBOR(v interface{}) ([]byte, error) {
	return cbor.Marshal(v)
}

// decodeCBOR deserializes data into a value.
func decodeCBOR(data []byte, v interface{}) error {
	if err := cbor.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	return nil
}

// SaveState replaces the persisted ledger state with the snapshot.
func (s *BoltStore) SaveState(st *token.State) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		govRaw, err := encodeCBOR(st.Governance)
		if err != nil {
			return fmt.Errorf("encode governance: %w", err)
		}
		meta := metaRecord{
			Name:                  st.Name,
			Symbol:                st.Symbol,
			BaseURI:               st.BaseURI,
			Address:               st.Address,
			Governance:            govRaw,
			ImplementationVersion: st.ImplementationVersion,
			SatelliteImpls:        st.SatelliteImpls,
		}
		data, err := encodeCBOR(meta)
		if err != nil {
			return fmt.Errorf("encode meta: %w", err)
		}
		if err := tx.Bucket(bucketMeta).Put(keyMeta, data); err != nil {
			return fmt.Errorf("boltstore: put meta: %w", err)
		}

		if err := replaceBucket(tx, bucketPositions); err != nil {
			return err
		}
		for _, rec := range st.Positions {
			if err := putRecord(tx, bucketPositions, rec.TokenID[:], rec); err != nil {
				return err
			}
		}

		if err := replaceBucket(tx, bucketHoldings); err != nil {
			return err
		}
		for _, rec := range st.Holdings {
			key := append(append([]byte{}, rec.Account[:]...), rec.TokenID[:]...)
			if err := putRecord(tx, bucketHoldings, key, rec); err != nil {
				return err
			}
		}

		if err := replaceBucket(tx, bucketRequests); err != nil {
			return err
		}
		for _, rec := range st.Requests {
			if err := putRecord(tx, bucketRequests, []byte(rec.TransactionID), rec); err != nil {
				return err
			}
		}

		if err := replaceBucket(tx, bucketSatellites); err != nil {
			return err
		}
		for _, rec := range st.Satellites {
			if err := putRecord(tx, bucketSatellites, rec.TokenID[:], rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadState reads the persisted ledger state, or ErrNoState when the
// database was never written.
func (s *BoltStore) LoadState() (*token.State, error) {
	st := &token.State{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketMeta).Get(keyMeta)
		if data == nil {
			return ErrNoState
		}
		var meta metaRecord
		if err := decodeCBOR(data, &meta); err != nil {
			return err
		}
		st.Name = meta.Name
		st.Symbol = meta.Symbol
		st.BaseURI = meta.BaseURI
		st.Address = meta.Address
		st.ImplementationVersion = meta.ImplementationVersion
		if err := decodeCBOR(meta.Governance, &st.Governance); err != nil {
			return err
		}
		st.SatelliteImpls = meta.SatelliteImpls

		if err := loadRecords(tx, bucketPositions, func(data []byte) error {
			var rec token.PositionRecord
			if err := decodeCBOR(data, &rec); err != nil {
				return err
			}
			st.Positions = append(st.Positions, rec)
			return nil
		}); err != nil {
			return err
		}

		if err := loadRecords(tx, bucketHoldings, func(data []byte) error {
			var rec token.HoldingRecord
			if err := decodeCBOR(data, &rec); err != nil {
				return err
			}
			st.Holdings = append(st.Holdings, rec)
			return nil
		}); err != nil {
			return err
		}

		if err := loadRecords(tx, bucketRequests, func(data []byte) error {
			var rec token.TransferRequest
			if err := decodeCBOR(data, &rec); err != nil {
				return err
			}
			st.Requests = append(st.Requests, rec)
			return nil
		}); err != nil {
			return err
		}

		return loadRecords(tx, bucketSatellites, func(data []byte) error {
			var rec token.SatelliteRecord
			if err := decodeCBOR(data, &rec); err != nil {
				return err
			}
			st.Satellites = append(st.Satellites, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// replaceBucket drops and recreates a bucket so stale records do not
// survive a save.
func replaceBucket(tx *bbolt.Tx, name []byte) error {
	if err := tx.DeleteBucket(name); err != nil {
		return fmt.Errorf("boltstore: drop bucket %q: %w", name, err)
	}
	if _, err := tx.CreateBucket(name); err != nil {
		return fmt.Errorf("boltstore: recreate bucket %q: %w", name, err)
	}
	return nil
}

// putRecord stores one CBOR-encoded record.
func putRecord(tx *bbolt.Tx, bucket, key []byte, v interface{}) error {
	data, err := encodeCBOR(v)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := tx.Bucket(bucket).Put(key, data); err != nil {
		return fmt.Errorf("boltstore: put record in %q: %w", bucket, err)
	}
	return nil
}

// loadRecords iterates a bucket's records in key order.
func loadRecords(tx *bbolt.Tx, bucket []byte, fn func(data []byte) error) error {
	return tx.Bucket(bucket).ForEach(func(_, v []byte) error {
		return fn(v)
	})
}
