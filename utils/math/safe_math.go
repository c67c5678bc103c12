// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package math provides overflow-checked integer arithmetic.
package math

import (
	"errors"

	"github.com/holiman/uint256"
)

// BasisPointsDenominator is the number of basis points in 100%.
const BasisPointsDenominator uint64 = 10_000

// Unsigned is a constraint that permits any unsigned integer type.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

var (
	ErrOverflow       = errors.New("overflow")
	ErrUnderflow      = errors.New("underflow")
	ErrDivisionByZero = errors.New("division by zero")
)

// MaxUint returns the maximum value of an unsigned integer of type T.
func MaxUint[T Unsigned]() T {
	return ^T(0)
}

// Add returns:
// 1) a + b
// 2) If there is overflow, an error
func Add[T Unsigned](a, b T) (T, error) {
	if a > MaxUint[T]()-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}

// Sub returns:
// 1) a - b
// 2) If there is underflow, an error
func Sub[T Unsigned](a, b T) (T, error) {
	if a < b {
		return 0, ErrUnderflow
	}
	return a - b, nil
}

// Mul returns:
// 1) a * b
// 2) If there is overflow, an error
func Mul[T Unsigned](a, b T) (T, error) {
	if b != 0 && a > MaxUint[T]()/b {
		return 0, ErrOverflow
	}
	return a * b, nil
}

// MulDiv returns floor(a * b / d). The product is computed with 256 bits of
// precision so only a quotient that does not fit in a uint64 overflows.
func MulDiv(a, b, d uint64) (uint64, error) {
	if d == 0 {
		return 0, ErrDivisionByZero
	}
	z, overflow := new(uint256.Int).MulDivOverflow(
		uint256.NewInt(a),
		uint256.NewInt(b),
		uint256.NewInt(d),
	)
	if overflow || !z.IsUint64() {
		return 0, ErrOverflow
	}
	return z.Uint64(), nil
}

// BasisPoints returns floor(amount * bps / 10000), rejecting a product that
// does not fit in a uint64.
func BasisPoints(amount, bps uint64) (uint64, error) {
	product, err := Mul(amount, bps)
	if err != nil {
		return 0, err
	}
	return product / BasisPointsDenominator, nil
}

// PercentOf returns floor(whole * percent / 100).
func PercentOf(whole, percent uint64) (uint64, error) {
	return MulDiv(whole, percent, 100)
}
