// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package txs defines the transactions that drive a vault through its
// lifecycle.
package txs

import (
	"errors"
	"fmt"

	"github.com/luxfi/codec"
	"github.com/luxfi/crypto/hash"
	"github.com/luxfi/ids"
)

var (
	ErrNilTx        = errors.New("tx is nil")
	ErrEmptyCaller  = errors.New("caller is empty")
	ErrEmptyVaultID = errors.New("vault ID is empty")
	ErrEmptyAssetID = errors.New("asset ID is empty")
	ErrZeroAmount   = errors.New("amount is zero")
	ErrZeroPrice    = errors.New("price is zero")
	ErrRoyaltyRange = errors.New("royalty exceeds 100%")
)

// UnsignedTx is the body of a transaction.
type UnsignedTx interface {
	// Caller is the account on whose authority the tx executes.
	Caller() ids.ShortID
	// SyntacticVerify checks the tx without reading any state.
	SyntacticVerify() error
	// Visit calls [visitor] with this transaction's concrete type.
	Visit(visitor Visitor) error
}

// Tx is a serialized transaction with a content-derived ID.
type Tx struct {
	Unsigned UnsignedTx `serialize:"true" json:"unsignedTx"`

	TxID  ids.ID `json:"id"`
	bytes []byte
}

// NewTx wraps and initializes [unsigned].
func NewTx(unsigned UnsignedTx) (*Tx, error) {
	tx := &Tx{Unsigned: unsigned}
	return tx, tx.Initialize(Codec)
}

// Parse decodes [b] and sets the tx ID from its bytes.
func Parse(c codec.Manager, b []byte) (*Tx, error) {
	tx := &Tx{}
	if _, err := c.Unmarshal(b, tx); err != nil {
		return nil, fmt.Errorf("couldn't parse tx: %w", err)
	}
	tx.SetBytes(b)
	return tx, nil
}

// Initialize serializes the tx and derives its ID.
func (tx *Tx) Initialize(c codec.Manager) error {
	b, err := c.Marshal(CodecVersion, tx)
	if err != nil {
		return fmt.Errorf("couldn't marshal tx: %w", err)
	}
	tx.SetBytes(b)
	return nil
}

func (tx *Tx) SetBytes(b []byte) {
	tx.bytes = b
	tx.TxID = hash.ComputeHash256Array(b)
}

func (tx *Tx) ID() ids.ID {
	return tx.TxID
}

func (tx *Tx) Bytes() []byte {
	return tx.bytes
}

// SyntacticVerify checks the tx without reading any state.
func (tx *Tx) SyntacticVerify() error {
	if tx == nil || tx.Unsigned == nil {
		return ErrNilTx
	}
	return tx.Unsigned.SyntacticVerify()
}

// BaseTx carries the fields every transaction has.
type BaseTx struct {
	From ids.ShortID `serialize:"true" json:"from"`
	// Nonce distinguishes otherwise identical txs from the same caller.
	Nonce uint64 `serialize:"true" json:"nonce"`
}

func (t *BaseTx) Caller() ids.ShortID {
	return t.From
}

func (t *BaseTx) verify() error {
	if t.From == ids.ShortEmpty {
		return ErrEmptyCaller
	}
	return nil
}

func verifyVaultID(vaultID ids.ID) error {
	if vaultID == ids.Empty {
		return ErrEmptyVaultID
	}
	return nil
}
