// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chaumpedersen

import (
	"fmt"

	"github.com/go-errors/errors"
)

var (
	// ErrInvalidModulus is returned when a modulus or group order is absent, zero or one.
	ErrInvalidModulus = errors.New("invalid modulus")
	// ErrInvalidRange is returned when a value lies outside the interval it is required to lie in,
	// e.g. a secret, nonce or challenge outside [0, q).
	ErrInvalidRange = errors.New("value out of range")
	// ErrArithmeticOverflow is part of the error taxonomy only. Exponentiation reduces after every
	// multiplication on arbitrary precision integers, so it is never returned.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
	// ErrRandomnessUnavailable wraps failures of a RandomSource. It is never retried.
	ErrRandomnessUnavailable = errors.New("randomness unavailable")
	// ErrInvalidGroup is returned for group parameters that do not form a valid group.
	ErrInvalidGroup = errors.New("invalid group parameters")
	// ErrInvalidState is returned when a session method is called out of protocol order.
	ErrInvalidState = errors.New("invalid session state")
)

// wrapf prefixes err with a formatted message. The result still matches err under
// github.com/go-errors/errors.Is.
func wrapf(err error, format string, args ...interface{}) error {
	return errors.WrapPrefix(err, fmt.Sprintf(format, args...), 1)
}
