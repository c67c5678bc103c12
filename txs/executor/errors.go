// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"errors"
	"fmt"

	"github.com/luxfi/fracvm/ledger"
	"github.com/luxfi/fracvm/txs"

	safemath "github.com/luxfi/fracvm/utils/math"
)

// Kind classifies why a transaction was rejected.
type Kind uint8

const (
	KindUnknown Kind = iota
	// KindState is an operation attempted in the wrong lifecycle phase.
	KindState
	// KindAuthorization is a caller that is not the required authority.
	KindAuthorization
	// KindQuantity is an amount out of range, an insufficient balance or a
	// checked arithmetic failure.
	KindQuantity
	// KindTemporal is an operation outside its vote window.
	KindTemporal
	// KindGovernance is a quorum or ballot rule violation.
	KindGovernance
)

func (k Kind) String() string {
	switch k {
	case KindState:
		return "state"
	case KindAuthorization:
		return "authorization"
	case KindQuantity:
		return "quantity"
	case KindTemporal:
		return "temporal"
	case KindGovernance:
		return "governance"
	default:
		return "unknown"
	}
}

var (
	ErrVaultNotFound = errors.New("vault not found")
	ErrVaultExists   = errors.New("vault already exists for asset")
	ErrVaultClosed   = errors.New("vault is closed")
	ErrVaultLocked   = errors.New("vault is locked for buyout")
	ErrVaultDrained  = errors.New("vault has no claims left to redeem")
	ErrNoClaims      = errors.New("vault has issued no claims")

	ErrNotAuthority = errors.New("caller is not the vault authority")
	ErrNotBuyer     = errors.New("caller is not the buyout buyer")
	ErrVaultCaller  = errors.New("vault accounts cannot issue transactions")
	ErrAssetNotHeld = errors.New("asset not held by caller")

	ErrAmountBelowMinimum  = errors.New("amount below minimum")
	ErrPriceBelowMinimum   = errors.New("buyout price below minimum")
	ErrRoyaltyTooHigh      = errors.New("artist royalty exceeds maximum")
	ErrFeesTooHigh         = errors.New("platform fee and royalty exceed 100%")
	ErrInsufficientClaims  = errors.New("insufficient claim balance")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrZeroBalance         = errors.New("no claims to vote with")
	ErrSettlementExhausted = errors.New("payout exceeds remaining settlement balance")
	ErrArithmetic          = errors.New("checked arithmetic failed")

	ErrVoteNotActive   = errors.New("buyout vote is not active")
	ErrVoteExpired     = errors.New("buyout vote has expired")
	ErrVoteNotElapsed  = errors.New("buyout vote has not ended")
	ErrQuorumNotMet    = errors.New("quorum not reached for buyout")
	ErrQuorumReached   = errors.New("quorum reached for buyout")
	ErrDuplicateVote   = errors.New("caller already voted in this cycle")
	ErrInvariantBroken = errors.New("vault invariant broken")
)

// Error is a typed rejection. Nothing a rejected transaction wrote survives.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s violation: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the rejection kind of [err], or KindUnknown if [err] is not
// a typed rejection.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func reject(kind Kind, err error) error {
	return &Error{Kind: kind, Err: err}
}

func rejectf(kind Kind, sentinel error, format string, args ...any) error {
	return &Error{
		Kind: kind,
		Err:  fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)),
	}
}

// classifyLedger types the failures a ledger call may report. Anything else
// is an infrastructure failure and is returned as is.
func classifyLedger(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ledger.ErrInsufficientBalance):
		return reject(KindQuantity, err)
	case errors.Is(err, ledger.ErrNotOwner), errors.Is(err, ledger.ErrUnauthorized):
		return reject(KindAuthorization, err)
	case errors.Is(err, safemath.ErrOverflow), errors.Is(err, safemath.ErrUnderflow):
		return reject(KindQuantity, fmt.Errorf("%w: %w", ErrArithmetic, err))
	default:
		return err
	}
}

func classifySyntax(err error) error {
	switch {
	case errors.Is(err, txs.ErrEmptyCaller):
		return reject(KindAuthorization, err)
	case errors.Is(err, txs.ErrZeroAmount):
		return reject(KindQuantity, fmt.Errorf("%w: %w", ErrAmountBelowMinimum, err))
	case errors.Is(err, txs.ErrZeroPrice):
		return reject(KindQuantity, fmt.Errorf("%w: %w", ErrPriceBelowMinimum, err))
	case errors.Is(err, txs.ErrRoyaltyRange):
		return reject(KindQuantity, fmt.Errorf("%w: %w", ErrRoyaltyTooHigh, err))
	case errors.Is(err, txs.ErrEmptyVaultID):
		return reject(KindState, fmt.Errorf("%w: %w", ErrVaultNotFound, err))
	default:
		return reject(KindState, err)
	}
}

func arithmetic(err error, format string, args ...any) error {
	return reject(KindQuantity, fmt.Errorf("%w: %s: %w", ErrArithmetic, fmt.Sprintf(format, args...), err))
}
