package common

import (
	"github.com/privacybydesign/chaumpedersen/big"
)

// FastMod reduces modulo a fixed modulus p. When p = 2^b - c for small c (as for many
// standardized safe primes) reduction uses shifts and a small multiplication instead of a
// division; otherwise it falls back to big.Int.Mod.
type FastMod struct {
	enabled bool
	p       big.Int
	c       big.Int
	b       uint
	mask    big.Int // (1 << b) - 1
}

// NewFastMod returns a FastMod for the given modulus, which must be positive.
func NewFastMod(p *big.Int) *FastMod {
	var m FastMod
	m.Set(p)
	return &m
}

func (m *FastMod) Set(p *big.Int) {
	var tmp, one big.Int
	one.SetUint64(1)
	m.p.Set(p)
	m.b = uint(p.BitLen())
	tmp.SetUint64(1)
	tmp.Lsh(&tmp, m.b)
	m.c.Sub(&tmp, &m.p)
	if m.c.BitLen() < 60 {
		m.enabled = true
		m.mask.Sub(&tmp, &one)
	} else {
		m.enabled = false
	}
}

// Modulus returns the modulus m reduces by.
func (m *FastMod) Modulus() *big.Int {
	return &m.p
}

// Mod sets ret to x mod p and returns ret. Negative x is reduced into [0, p).
func (m *FastMod) Mod(ret, x *big.Int) *big.Int {
	if !m.enabled || x.Sign() == -1 {
		return ret.Mod(x, &m.p)
	}

	if x.Cmp(&m.p) < 0 {
		return ret.Set(x)
	}

	// x = hi*2^b + lo = hi*c + lo (mod p); repeat until hi vanishes
	cur := x
	var tmp, carry big.Int
	retSet := false
	for {
		carry.Rsh(cur, m.b)
		if carry.Sign() == 0 {
			break
		}
		retSet = true
		ret.And(cur, &m.mask)
		tmp.Mul(&carry, &m.c)
		ret.Add(ret, &tmp)
		cur = ret
	}

	if !retSet {
		return ret.Sub(x, &m.p)
	}

	if ret.Cmp(&m.p) >= 0 {
		ret.Sub(ret, &m.p)
	}

	return ret
}

// MulMod sets ret to x*y mod p and returns ret. ret may alias x or y.
func (m *FastMod) MulMod(ret, x, y *big.Int) *big.Int {
	var tmp big.Int
	tmp.Mul(x, y)
	return m.Mod(ret, &tmp)
}
