package token

import (
	"fmt"

	"github.com/secledger/libsecledger-go/asset"
)

// TransferStatus is the lifecycle state of a lock transfer request.
type TransferStatus uint8

// Transfer request states. Created is the only non-terminal state; a request
// moves exactly once, to Validated or Rejected.
const (
	StatusUndefined TransferStatus = iota
	StatusCreated
	StatusValidated
	StatusRejected
)

// String returns the status name.
func (st TransferStatus) String() string {
	switch st {
	case StatusCreated:
		return "Created"
	case StatusValidated:
		return "Validated"
	case StatusRejected:
		return "Rejected"
	default:
		return "Undefined"
	}
}

// TransferRequest is an escrowed transfer awaiting release or cancellation.
// Terminal requests remain in storage as an audit record.
type TransferRequest struct {
	TransactionID string         `cbor:"transaction_id"`
	TokenID       asset.TokenID  `cbor:"token_id"`
	From          asset.Address  `cbor:"from"`
	To            asset.Address  `cbor:"to"`
	Amount        uint64         `cbor:"amount"`
	Status        TransferStatus `cbor:"status"`
}

// SafeTransferFrom moves amount of tokenID from one account to another,
// immediately (Direct) or under escrow (Lock), as selected by the data
// payload. The caller must be the position's registrar agent; not while
// paused.
func (s *Service) SafeTransferFrom(caller, from, to asset.Address, tokenID asset.TokenID, amount uint64, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gov.RequireNotPaused(); err != nil {
		return err
	}
	pos := s.positions[tokenID]
	if pos == nil || caller != pos.RegistrarAgent {
		return fmt.Errorf("%w: token %s", ErrUnauthorizedRegistrarAgent, tokenID)
	}
	return s.transfer(caller, from, to, tokenID, amount, data)
}

// ForceSafeTransferFrom is SafeTransferFrom gated on the global registrar,
// bypassing the per-position agent check.
func (s *Service) ForceSafeTransferFrom(caller, from, to asset.Address, tokenID asset.TokenID, amount uint64, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gov.RequireNotPaused(); err != nil {
		return err
	}
	if err := s.gov.RequireRegistrar(caller); err != nil {
		return err
	}
	return s.transfer(caller, from, to, tokenID, amount, data)
}

// transfer dispatches on the decoded payload. Caller authorization and the
// pause gate have already been checked.
func (s *Service) transfer(operator, from, to asset.Address, tokenID asset.TokenID, amount uint64, data []byte) error {
	if len(data) == 0 {
		return ErrDataTransferEmpty
	}
	td, err := DecodeTransferData(data)
	if err != nil {
		return err
	}
	if from.IsZero() || to.IsZero() {
		return ErrZeroAddressCheck
	}

	switch td.Kind {
	case TransferKindDirect:
		return s.directTransfer(operator, from, to, tokenID, amount)
	case TransferKindLock:
		return s.lockTransfer(operator, from, to, tokenID, amount, td.TransactionID, data)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTransferType, td.Kind)
	}
}

// directTransfer moves value immediately in both ledgers.
func (s *Service) directTransfer(operator, from, to asset.Address, tokenID asset.TokenID, amount uint64) error {
	if err := s.requireAvailable(from, tokenID, amount); err != nil {
		return err
	}
	s.balances[accountKey{from, tokenID}] -= amount
	s.balances[accountKey{to, tokenID}] += amount

	s.mirrorTransfer(tokenID, from, to, amount)
	s.emit(TransferSingle{Operator: operator, From: from, To: to, TokenID: tokenID, Amount: amount})
	return nil
}

// lockTransfer engages the amount and creates the transfer request. Balances
// do not move yet; a zero-amount transfer signal lets balance observers see
// the position in flight.
func (s *Service) lockTransfer(operator, from, to asset.Address, tokenID asset.TokenID, amount uint64, transactionID string, raw []byte) error {
	if err := asset.ValidateTransactionID(transactionID); err != nil {
		return err
	}
	if _, exists := s.requests[transactionID]; exists {
		return fmt.Errorf("%w: %s", ErrTransactionAlreadyExists, transactionID)
	}
	if err := s.requireAvailable(from, tokenID, amount); err != nil {
		return err
	}
	// On the force path the position may not exist; the event then names
	// no agent, as for terminal transitions.
	agent := asset.ZeroAddress
	if pos := s.positions[tokenID]; pos != nil {
		agent = pos.RegistrarAgent
	}
	s.engaged[accountKey{from, tokenID}] += amount
	s.requests[transactionID] = &TransferRequest{
		TransactionID: transactionID,
		TokenID:       tokenID,
		From:          from,
		To:            to,
		Amount:        amount,
		Status:        StatusCreated,
	}

	s.mirrorTransfer(tokenID, from, to, 0)
	s.emit(LockReady{
		TransactionID:  transactionID,
		RegistrarAgent: agent,
		From:           from,
		To:             to,
		TokenID:        tokenID,
		Amount:         amount,
		Data:           raw,
	})
	s.emit(TransferSingle{Operator: operator, From: from, To: to, TokenID: tokenID, Amount: 0})
	return nil
}

// ReleaseTransaction settles a lock transfer: value moves, the engagement is
// released, and the request becomes Validated. The caller must be the
// position's settlement agent; not while paused. An unknown transaction id
// resolves to an absent position and therefore fails the agent check.
func (s *Service) ReleaseTransaction(caller asset.Address, transactionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gov.RequireNotPaused(); err != nil {
		return err
	}
	req, tokenID := s.lookupRequest(transactionID)
	agent := asset.ZeroAddress
	if pos := s.positions[tokenID]; pos != nil {
		agent = pos.SettlementAgent
	}
	if agent.IsZero() || caller != agent {
		return fmt.Errorf("%w: token %s", ErrUnauthorizedSettlementAgent, tokenID)
	}
	return s.release(caller, req)
}

// ForceReleaseTransaction is ReleaseTransaction gated on the global
// registrar.
func (s *Service) ForceReleaseTransaction(caller asset.Address, transactionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gov.RequireNotPaused(); err != nil {
		return err
	}
	if err := s.gov.RequireRegistrar(caller); err != nil {
		return err
	}
	req, _ := s.lookupRequest(transactionID)
	return s.release(caller, req)
}

// CancelTransaction rejects a lock transfer: the engagement returns to the
// sender without value movement and the request becomes Rejected. The caller
// must be the position's registrar agent; not while paused. An unknown
// transaction id fails the agent check, as for release.
func (s *Service) CancelTransaction(caller asset.Address, transactionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gov.RequireNotPaused(); err != nil {
		return err
	}
	req, tokenID := s.lookupRequest(transactionID)
	agent := asset.ZeroAddress
	if pos := s.positions[tokenID]; pos != nil {
		agent = pos.RegistrarAgent
	}
	if agent.IsZero() || caller != agent {
		return fmt.Errorf("%w: token %s", ErrUnauthorizedRegistrarAgent, tokenID)
	}
	return s.cancel(caller, req)
}

// ForceCancelTransaction is CancelTransaction gated on the global registrar.
func (s *Service) ForceCancelTransaction(caller asset.Address, transactionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gov.RequireNotPaused(); err != nil {
		return err
	}
	if err := s.gov.RequireRegistrar(caller); err != nil {
		return err
	}
	req, _ := s.lookupRequest(transactionID)
	return s.cancel(caller, req)
}

// GetLockedAmount returns the coordinates of an open lock transfer. It fails
// unless the request exists and is still Created.
func (s *Service) GetLockedAmount(transactionID string) (asset.TokenID, asset.Address, asset.Address, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req := s.requests[transactionID]
	if req == nil || req.Status != StatusCreated {
		return asset.ZeroTokenID, asset.ZeroAddress, asset.ZeroAddress, 0,
			fmt.Errorf("%w: %s", ErrInvalidTransferRequestStatus, transactionID)
	}
	return req.TokenID, req.From, req.To, req.Amount, nil
}

// lookupRequest resolves a transaction id to its request and token id. An
// unknown id yields a nil request and the zero token id, which can never
// match a real position.
func (s *Service) lookupRequest(transactionID string) (*TransferRequest, asset.TokenID) {
	req := s.requests[transactionID]
	if req == nil {
		return nil, asset.ZeroTokenID
	}
	return req, req.TokenID
}

// release commits an authorized release. The request must still be Created.
func (s *Service) release(operator asset.Address, req *TransferRequest) error {
	if req == nil || req.Status != StatusCreated {
		return ErrInvalidTransferRequestStatus
	}
	key := accountKey{req.From, req.TokenID}
	if s.balances[key] < req.Amount {
		return fmt.Errorf("%w: token %s: balance %d, requested %d",
			ErrInsufficientBalance, req.TokenID, s.balances[key], req.Amount)
	}
	s.balances[key] -= req.Amount
	s.balances[accountKey{req.To, req.TokenID}] += req.Amount
	if s.engaged[key] > req.Amount {
		s.engaged[key] -= req.Amount
	} else {
		s.engaged[key] = 0
	}
	req.Status = StatusValidated

	s.mirrorTransfer(req.TokenID, req.From, req.To, req.Amount)
	s.emitLockUpdated(req)
	s.emit(TransferSingle{Operator: operator, From: req.From, To: req.To, TokenID: req.TokenID, Amount: req.Amount})
	return nil
}

// cancel commits an authorized cancellation. The request must still be
// Created.
func (s *Service) cancel(operator asset.Address, req *TransferRequest) error {
	if req == nil || req.Status != StatusCreated {
		return ErrInvalidTransferRequestStatus
	}
	key := accountKey{req.From, req.TokenID}
	if s.engaged[key] > req.Amount {
		s.engaged[key] -= req.Amount
	} else {
		s.engaged[key] = 0
	}
	req.Status = StatusRejected

	s.mirrorTransfer(req.TokenID, req.From, req.To, 0)
	s.emitLockUpdated(req)
	return nil
}

// emitLockUpdated reports a terminal transition of a lock request.
func (s *Service) emitLockUpdated(req *TransferRequest) {
	agent := asset.ZeroAddress
	if pos := s.positions[req.TokenID]; pos != nil {
		agent = pos.RegistrarAgent
	}
	s.emit(LockUpdated{
		TransactionID:  req.TransactionID,
		RegistrarAgent: agent,
		From:           req.From,
		To:             req.To,
		TokenID:        req.TokenID,
		Status:         req.Status,
	})
}

// requireAvailable checks that amount does not exceed the holder's available
// (unengaged) balance.
func (s *Service) requireAvailable(from asset.Address, tokenID asset.TokenID, amount uint64) error {
	key := accountKey{from, tokenID}
	var available uint64
	if s.balances[key] > s.engaged[key] {
		available = s.balances[key] - s.engaged[key]
	}
	if amount > available {
		return fmt.Errorf("%w: token %s: available %d, requested %d",
			ErrInsufficientBalance, tokenID, available, amount)
	}
	return nil
}
