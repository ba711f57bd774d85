// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chaumpedersen

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/bwesterb/go-exptable"
	"github.com/go-errors/errors"

	"github.com/privacybydesign/chaumpedersen/big"
	"github.com/privacybydesign/chaumpedersen/internal/common"
	"github.com/privacybydesign/chaumpedersen/safeprime"
)

// Group holds the public parameters shared by prover and verifier: a prime modulus P, the prime
// order Q of a subgroup of Z_P^*, and two distinct generators G and H of that subgroup.
// A Group must be obtained from NewGroup, GenerateGroup or ToyGroup; it is read-only afterwards
// and safe for concurrent use.
type Group struct {
	XMLName xml.Name `xml:"Group" json:"-" cbor:"-"`
	P       *big.Int `xml:"p" json:"p" cbor:"p"`
	Q       *big.Int `xml:"q" json:"q" cbor:"q"`
	G       *big.Int `xml:"g" json:"g" cbor:"g"`
	H       *big.Int `xml:"h" json:"h" cbor:"h"`

	gTable exptable.Table
	hTable exptable.Table

	pMod *common.FastMod
}

// NewGroup validates the given parameters and returns a Group ready for use. The arguments are
// copied.
func NewGroup(p, q, g, h *big.Int) (*Group, error) {
	for _, v := range []*big.Int{p, q, g, h} {
		if v == nil {
			return nil, wrapf(ErrInvalidGroup, "missing group parameter")
		}
	}
	group := &Group{
		P: new(big.Int).Set(p),
		Q: new(big.Int).Set(q),
		G: new(big.Int).Set(g),
		H: new(big.Int).Set(h),
	}
	if err := group.Validate(); err != nil {
		return nil, err
	}
	group.precompute()
	return group, nil
}

// Validate checks that P is prime, Q is a prime dividing P-1, and that G and H are distinct
// elements of order Q.
func (g *Group) Validate() error {
	if g.P == nil || g.Q == nil || g.G == nil || g.H == nil {
		return wrapf(ErrInvalidGroup, "missing group parameter")
	}
	if err := checkModulus(g.P); err != nil {
		return errors.WrapPrefix(ErrInvalidGroup, err.Error(), 0)
	}
	if g.P.Cmp(bigTWO) <= 0 || !g.P.ProbablyPrime(primalityRounds) {
		return wrapf(ErrInvalidGroup, "p is not an odd prime")
	}
	if g.Q.Cmp(bigONE) <= 0 || !g.Q.ProbablyPrime(primalityRounds) {
		return wrapf(ErrInvalidGroup, "q is not a prime")
	}
	pMinusOne := new(big.Int).Sub(g.P, bigONE)
	if new(big.Int).Mod(pMinusOne, g.Q).Sign() != 0 {
		return wrapf(ErrInvalidGroup, "q does not divide p-1")
	}
	if g.G.Cmp(g.H) == 0 {
		return wrapf(ErrInvalidGroup, "g and h coincide")
	}
	for _, name := range g.Names() {
		if err := g.validateGenerator(name); err != nil {
			return err
		}
	}
	return nil
}

func (g *Group) validateGenerator(name string) error {
	base := g.Base(name)
	if base.Cmp(bigONE) <= 0 || base.Cmp(g.P) >= 0 {
		return wrapf(ErrInvalidGroup, "%s must lie in [2, p)", name)
	}
	// q is prime, so base^q = 1 together with base != 1 means base has order exactly q
	order, err := ModExp(base, g.Q, g.P)
	if err != nil {
		return errors.WrapPrefix(ErrInvalidGroup, err.Error(), 0)
	}
	if order.Cmp(bigONE) != 0 {
		return wrapf(ErrInvalidGroup, "%s does not have order q", name)
	}
	return nil
}

func (g *Group) precompute() {
	g.gTable.Compute(g.G.Go(), g.P.Go(), expTableWidth)
	g.hTable.Compute(g.H.Go(), g.P.Go(), expTableWidth)
	g.pMod = common.NewFastMod(g.P)
}

func (g *Group) ready() error {
	if g == nil || g.pMod == nil {
		return wrapf(ErrInvalidGroup, "group not initialized, construct it with NewGroup")
	}
	return nil
}

// Exp sets ret to base^exp mod P using the precomputed table for the named base ("g" or "h"),
// and reports whether the name was known. exp must lie in [-Q, Q).
func (g *Group) Exp(ret *big.Int, name string, exp *big.Int) bool {
	var table *exptable.Table
	if name == "g" {
		table = &g.gTable
	} else if name == "h" {
		table = &g.hTable
	} else {
		return false
	}
	var exp2 big.Int
	if exp.Sign() == -1 {
		exp2.Add(exp, g.Q)
		exp = &exp2
	}
	if exp.Sign() == -1 || exp.Cmp(g.Q) >= 0 {
		panic(fmt.Sprintf("scalar out of bounds: %v %v", exp, g.Q))
	}
	if exp.Sign() == 0 {
		ret.SetUint64(1)
		return true
	}
	table.Exp(ret.Go(), exp.Go())
	return true
}

func (g *Group) Names() []string {
	return []string{"g", "h"}
}

func (g *Group) Base(name string) *big.Int {
	if name == "g" {
		return g.G
	}
	if name == "h" {
		return g.H
	}
	return nil
}

// Commit computes the pair (G^e mod P, H^e mod P) for an exponent e in [0, Q). With e the
// secret x this is the public key (y1, y2); with e a nonce k it is the commitment (r1, r2).
func (g *Group) Commit(e *big.Int) (*big.Int, *big.Int, error) {
	if err := g.ready(); err != nil {
		return nil, nil, err
	}
	if err := checkBelow("exponent", e, g.Q); err != nil {
		return nil, nil, err
	}
	c1, c2 := new(big.Int), new(big.Int)
	g.Exp(c1, "g", e)
	g.Exp(c2, "h", e)
	return c1, c2, nil
}

// Equal reports whether g and other have the same parameters.
func (g *Group) Equal(other *Group) bool {
	if g == nil || other == nil {
		return g == other
	}
	return g.P.Cmp(other.P) == 0 && g.Q.Cmp(other.Q) == 0 &&
		g.G.Cmp(other.G) == 0 && g.H.Cmp(other.H) == 0
}

// contains reports whether 0 <= x < P.
func (g *Group) contains(x *big.Int) bool {
	return x != nil && x.Sign() >= 0 && x.Cmp(g.P) < 0
}

// inSubgroup reports whether x is an element of the order Q subgroup.
func (g *Group) inSubgroup(x *big.Int) bool {
	if !g.contains(x) || x.Sign() == 0 {
		return false
	}
	return modExp(x, g.Q, g.pMod).Cmp(bigONE) == 0
}

// GenerateGroup generates a group of the given size from rnd: P = 2Q+1 is a safe prime and
// G, H are distinct random quadratic residues other than 1, hence of order Q.
func GenerateGroup(rnd io.Reader, bits int) (*Group, error) {
	// candidates are drawn from a fast generator seeded from rnd
	fast, err := common.NewRandomCPRNG(rnd)
	if err != nil {
		return nil, wrapf(ErrRandomnessUnavailable, "%v", err)
	}
	p, err := safeprime.Generate(fast, bits, nil)
	if err != nil {
		return nil, errors.WrapPrefix(err, "failed to generate safe prime", 0)
	}
	q := new(big.Int).Rsh(p, 1)

	g, err := randomResidue(rnd, p)
	if err != nil {
		return nil, err
	}
	var h *big.Int
	for {
		if h, err = randomResidue(rnd, p); err != nil {
			return nil, err
		}
		if h.Cmp(g) != 0 {
			break
		}
	}

	Logger.WithField("bits", bits).Debug("generated group")
	return NewGroup(p, q, g, h)
}

// randomResidue returns r^2 mod p for r uniform in [2, p-2]. As the only square roots of 1 are
// 1 and p-1, the result is never 1.
func randomResidue(rnd io.Reader, p *big.Int) (*big.Int, error) {
	bound := new(big.Int).Sub(p, big.NewInt(3))
	r, err := big.RandInt(rnd, bound)
	if err != nil {
		return nil, wrapf(ErrRandomnessUnavailable, "%v", err)
	}
	r.Add(r, bigTWO)
	return r.Mul(r, r).Mod(r, p), nil
}

// StandardGroup returns a group of at least the given size that needs no generation: P is a
// safe prime of the form 2^e - d, for which reduction modulo P is fast, and the generators are
// G = 4 and H = 9. Only a few sizes are available; for others StandardGroup returns
// ErrInvalidGroup and GenerateGroup should be used instead.
func StandardGroup(bits int) (*Group, error) {
	p := safeprime.Convenient(bits)
	if p == nil {
		return nil, wrapf(ErrInvalidGroup, "no standard group of %d bits", bits)
	}
	// squares other than 1 modulo a safe prime have order q
	return NewGroup(p, new(big.Int).Rsh(p, 1), big.NewInt(4), big.NewInt(9))
}

// ToyGroup returns the group p = 23, q = 11, g = 4, h = 9. It is far too small to be secure and
// exists for tests and examples only.
func ToyGroup() *Group {
	group, err := NewGroup(big.NewInt(23), big.NewInt(11), big.NewInt(4), big.NewInt(9))
	if err != nil {
		panic(err)
	}
	return group
}
