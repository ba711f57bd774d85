// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chaumpedersen

import (
	"github.com/privacybydesign/chaumpedersen/big"
	"github.com/privacybydesign/chaumpedersen/internal/common"
)

// VerifyProof checks a Chaum-Pedersen transcript against the public key (y1, y2) over modulus p
// with generators g and h, i.e. whether
//
//	r1 = g^s * y1^c mod p  and  r2 = h^s * y2^c mod p.
//
// A proof that does not verify is not an error; malformed input (such as a modulus below two
// or a negative value) likewise yields false.
func VerifyProof(p, y1, y2, r1, r2, g, h, c, s *big.Int) bool {
	if err := checkModulus(p); err != nil {
		Logger.WithError(err).Debug("rejecting proof")
		return false
	}
	for _, v := range []struct {
		name string
		x    *big.Int
	}{{"y1", y1}, {"y2", y2}, {"r1", r1}, {"r2", r2}, {"g", g}, {"h", h}, {"c", c}, {"s", s}} {
		if err := checkNonNegative(v.name, v.x); err != nil {
			Logger.WithError(err).Debug("rejecting proof")
			return false
		}
	}

	pMod := common.NewFastMod(p)
	if !verifyEquation(pMod, g, y1, r1, c, s) {
		Logger.Debug("proof rejected: first equation does not hold")
		return false
	}
	if !verifyEquation(pMod, h, y2, r2, c, s) {
		Logger.Debug("proof rejected: second equation does not hold")
		return false
	}
	return true
}

// verifyEquation reports whether commitment = base^s * public^c mod p.
func verifyEquation(pMod *common.FastMod, base, public, commitment, c, s *big.Int) bool {
	lhs := modExp(base, s, pMod)
	pMod.MulMod(lhs, lhs, modExp(public, c, pMod))
	return lhs.Cmp(commitment) == 0
}

// Verify checks the transcript (commitment, c, s) against pk within group g. In addition to
// VerifyProof it requires c and s to lie in [0, Q), and the commitment to consist of group
// elements.
func (g *Group) Verify(pk *PublicKey, commitment *Commitment, c, s *big.Int) bool {
	if err := g.ready(); err != nil {
		Logger.WithError(err).Debug("rejecting proof")
		return false
	}
	if pk == nil || commitment == nil || !g.contains(pk.Y1) || !g.contains(pk.Y2) {
		Logger.Debug("rejecting proof: missing or malformed input")
		return false
	}
	if checkBelow("challenge", c, g.Q) != nil || checkBelow("response", s, g.Q) != nil {
		Logger.Debug("rejecting proof: challenge or response out of range")
		return false
	}
	if !g.contains(commitment.R1) || !g.contains(commitment.R2) {
		Logger.Debug("rejecting proof: commitment out of range")
		return false
	}

	// g^s and h^s go through the fixed-base tables
	var lhs1, lhs2 big.Int
	g.Exp(&lhs1, "g", s)
	g.Exp(&lhs2, "h", s)
	g.pMod.MulMod(&lhs1, &lhs1, modExp(pk.Y1, c, g.pMod))
	g.pMod.MulMod(&lhs2, &lhs2, modExp(pk.Y2, c, g.pMod))
	if lhs1.Cmp(commitment.R1) != 0 || lhs2.Cmp(commitment.R2) != 0 {
		Logger.Debug("proof rejected")
		return false
	}
	return true
}
