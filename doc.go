// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package chaumpedersen implements the Chaum-Pedersen zero-knowledge proof: a prover
convinces a verifier that it knows x with y1 = g^x mod p and y2 = h^x mod p, without
revealing x.

The arithmetic is exposed as pure functions: ModExp (and its alias DerivePublicValue),
SolveResponse and VerifyProof. On top of these, Prover and Verifier run one session of the
interactive protocol each:

	prover := chaumpedersen.NewProver(sk, chaumpedersen.DefaultRandomSource())
	verifier := chaumpedersen.NewVerifier(sk.Public(), chaumpedersen.DefaultRandomSource())

	commitment, err := prover.Commit()  // (r1, r2) = (g^k, h^k)
	c, err := verifier.Challenge(commitment)
	s, err := prover.Respond(c)         // s = k - c*x mod q
	ok := verifier.Verify(s)            // g^s * y1^c == r1 and h^s * y2^c == r2

A session never answers more than one challenge. Moving messages between the two parties
is left to the application; Commitment and Transcript marshal to JSON and CBOR for that
purpose.

Group parameters come from NewGroup (validating externally chosen parameters),
GenerateGroup (a fresh safe-prime group) or StandardGroup (a fixed safe prime of the form
2^e - d, for which reduction needs no division). ToyGroup returns p = 23, q = 11, g = 4, h = 9,
which is useful in tests only.
*/
package chaumpedersen
