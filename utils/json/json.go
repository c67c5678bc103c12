// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package json provides the JSON-RPC codec and numeric types used by the API.
package json

import "strconv"

const Null = "null"

// Uint64 is a uint64 that is JSON marshaled as a decimal string, so amounts
// above 2^53 survive clients that parse numbers as doubles. Both quoted and
// bare numbers are accepted when unmarshaling.
type Uint64 uint64

func (u Uint64) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(strconv.FormatUint(uint64(u), 10))), nil
}

func (u *Uint64) UnmarshalJSON(b []byte) error {
	str := string(b)
	if str == Null {
		return nil
	}
	if unquoted, err := strconv.Unquote(str); err == nil {
		str = unquoted
	}
	val, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return err
	}
	*u = Uint64(val)
	return nil
}
