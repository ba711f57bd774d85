// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chaumpedersen

import (
	"github.com/privacybydesign/chaumpedersen/big"
	"github.com/privacybydesign/chaumpedersen/internal/common"
)

// ModExp computes base^exponent mod modulus for non-negative base and exponent and modulus > 1.
// It uses left-to-right square-and-multiply, reducing after every squaring and every
// multiplication, so no intermediate exceeds modulus^2.
func ModExp(base, exponent, modulus *big.Int) (*big.Int, error) {
	if err := checkModulus(modulus); err != nil {
		return nil, err
	}
	if err := checkNonNegative("base", base); err != nil {
		return nil, err
	}
	if err := checkNonNegative("exponent", exponent); err != nil {
		return nil, err
	}
	return modExp(base, exponent, common.NewFastMod(modulus)), nil
}

// DerivePublicValue computes generator^secret mod modulus, i.e. one half of a public key
// (y1 or y2) or of a commitment (r1 or r2).
func DerivePublicValue(generator, secret, modulus *big.Int) (*big.Int, error) {
	return ModExp(generator, secret, modulus)
}

func modExp(base, exponent *big.Int, m *common.FastMod) *big.Int {
	var b big.Int
	m.Mod(&b, base)
	result := big.NewInt(1)
	for i := exponent.BitLen() - 1; i >= 0; i-- {
		m.MulMod(result, result, result)
		if exponent.Bit(i) == 1 {
			m.MulMod(result, result, &b)
		}
	}
	return result
}

func checkModulus(modulus *big.Int) error {
	if modulus == nil || modulus.Cmp(bigONE) <= 0 {
		return wrapf(ErrInvalidModulus, "modulus must be larger than one, got %v", modulus)
	}
	return nil
}

func checkNonNegative(name string, x *big.Int) error {
	if x == nil {
		return wrapf(ErrInvalidRange, "%s missing", name)
	}
	if x.Sign() < 0 {
		return wrapf(ErrInvalidRange, "%s must not be negative", name)
	}
	return nil
}

// checkBelow verifies 0 <= x < bound.
func checkBelow(name string, x, bound *big.Int) error {
	if err := checkNonNegative(name, x); err != nil {
		return err
	}
	if x.Cmp(bound) >= 0 {
		return wrapf(ErrInvalidRange, "%s must be below %v", name, bound)
	}
	return nil
}

var (
	bigONE = big.NewInt(1)
	bigTWO = big.NewInt(2)
)
