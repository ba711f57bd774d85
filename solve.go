// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chaumpedersen

import (
	"github.com/privacybydesign/chaumpedersen/big"
)

// SolveResponse computes the prover's response s = (nonce - challenge*secret) mod order, where
// secret, nonce and challenge must lie in [0, order). The result lies in [0, order).
func SolveResponse(secret, nonce, challenge, order *big.Int) (*big.Int, error) {
	if err := checkModulus(order); err != nil {
		return nil, err
	}
	if err := checkBelow("secret", secret, order); err != nil {
		return nil, err
	}
	if err := checkBelow("nonce", nonce, order); err != nil {
		return nil, err
	}
	if err := checkBelow("challenge", challenge, order); err != nil {
		return nil, err
	}
	return solve(secret, nonce, challenge, order), nil
}

func solve(secret, nonce, challenge, order *big.Int) *big.Int {
	// Rem truncates towards zero, so a negative difference leaves a remainder in (-order, 0)
	s := new(big.Int).Mul(challenge, secret)
	s.Sub(nonce, s)
	s.Rem(s, order)
	if s.Sign() < 0 {
		s.Add(s, order)
	}
	return s
}
