// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chaumpedersen

import (
	"github.com/sirupsen/logrus"

	"github.com/privacybydesign/chaumpedersen/big"
)

// State is the position of a session in the three-move protocol.
type State int

const (
	// StateStart: the prover holds x but has not committed; the verifier awaits a commitment.
	StateStart State = iota
	// StateCommitted: the prover has published its commitment and awaits a challenge.
	StateCommitted
	// StateChallenged: the verifier has issued a challenge and awaits the response.
	StateChallenged
	// StateTerminal: the prover has responded; its nonce is gone.
	StateTerminal
	// StateVerified: the verifier accepted the response.
	StateVerified
	// StateRejected: the verifier rejected the response.
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateCommitted:
		return "committed"
	case StateChallenged:
		return "challenged"
	case StateTerminal:
		return "terminal"
	case StateVerified:
		return "verified"
	case StateRejected:
		return "rejected"
	}
	return "unknown"
}

// Commitment is the prover's first message (r1, r2) = (G^k, H^k) mod P.
type Commitment struct {
	R1 *big.Int `json:"r1" cbor:"r1"`
	R2 *big.Int `json:"r2" cbor:"r2"`
}

// Prover runs a single proof session for a private key. It draws a fresh nonce on Commit and
// forgets it after Respond, so each session answers exactly one challenge. A Prover is not safe
// for concurrent use; independent sessions may run concurrently.
type Prover struct {
	sk    *PrivateKey
	rnd   RandomSource
	state State
	nonce *big.Int
	log   *logrus.Entry
}

// NewProver starts a proof session for sk drawing its nonce from rnd.
func NewProver(sk *PrivateKey, rnd RandomSource) *Prover {
	return &Prover{
		sk:    sk,
		rnd:   rnd,
		state: StateStart,
		log:   Logger.WithField("role", "prover"),
	}
}

func (p *Prover) State() State {
	return p.state
}

// Commit draws the nonce k uniformly from [0, Q) and returns the commitment (G^k, H^k).
func (p *Prover) Commit() (*Commitment, error) {
	if p.state != StateStart {
		return nil, wrapf(ErrInvalidState, "cannot commit in state %s", p.state)
	}
	group := p.sk.Group
	k, err := p.rnd.UniformBelow(group.Q)
	if err != nil {
		return nil, err
	}
	r1, r2, err := group.Commit(k)
	if err != nil {
		return nil, err
	}
	p.nonce = k
	p.transition(StateCommitted)
	return &Commitment{R1: r1, R2: r2}, nil
}

// Respond answers the challenge c in [0, Q) with s = (k - c*x) mod Q and ends the session.
func (p *Prover) Respond(c *big.Int) (*big.Int, error) {
	if p.state != StateCommitted {
		return nil, wrapf(ErrInvalidState, "cannot respond in state %s", p.state)
	}
	group := p.sk.Group
	if err := checkBelow("challenge", c, group.Q); err != nil {
		return nil, err
	}
	s := solve(p.sk.X, p.nonce, c, group.Q)

	// the nonce must never answer a second challenge: two responses reveal x
	p.nonce.SetUint64(0)
	p.nonce = nil
	p.transition(StateTerminal)
	return s, nil
}

func (p *Prover) transition(to State) {
	p.log.WithFields(logrus.Fields{"from": p.state, "to": to}).Debug("session transition")
	p.state = to
}

// Verifier runs a single verification session against a public key. A Verifier is not safe for
// concurrent use; independent sessions may run concurrently.
type Verifier struct {
	pk         *PublicKey
	rnd        RandomSource
	state      State
	commitment *Commitment
	challenge  *big.Int
	response   *big.Int
	log        *logrus.Entry
}

// NewVerifier starts a verification session for pk drawing its challenge from rnd.
func NewVerifier(pk *PublicKey, rnd RandomSource) *Verifier {
	return &Verifier{
		pk:    pk,
		rnd:   rnd,
		state: StateStart,
		log:   Logger.WithField("role", "verifier"),
	}
}

func (v *Verifier) State() State {
	return v.state
}

// Challenge records the prover's commitment and returns a challenge drawn uniformly from [0, Q).
func (v *Verifier) Challenge(commitment *Commitment) (*big.Int, error) {
	if v.state != StateStart {
		return nil, wrapf(ErrInvalidState, "cannot challenge in state %s", v.state)
	}
	group := v.pk.Group
	if commitment == nil {
		return nil, wrapf(ErrInvalidRange, "missing commitment")
	}
	if err := checkBelow("r1", commitment.R1, group.P); err != nil {
		return nil, err
	}
	if err := checkBelow("r2", commitment.R2, group.P); err != nil {
		return nil, err
	}
	c, err := v.rnd.UniformBelow(group.Q)
	if err != nil {
		return nil, err
	}
	v.commitment = &Commitment{R1: new(big.Int).Set(commitment.R1), R2: new(big.Int).Set(commitment.R2)}
	v.challenge = c
	v.transition(StateChallenged)
	return new(big.Int).Set(c), nil
}

// Verify checks the prover's response and ends the session in StateVerified or StateRejected.
// Calling Verify in any other state than StateChallenged returns false.
func (v *Verifier) Verify(s *big.Int) bool {
	if v.state != StateChallenged {
		v.log.WithField("state", v.state).Warn("verify called out of order")
		return false
	}
	ok := v.pk.Group.Verify(v.pk, v.commitment, v.challenge, s)
	if s != nil {
		v.response = new(big.Int).Set(s)
	}
	if ok {
		v.transition(StateVerified)
	} else {
		v.transition(StateRejected)
	}
	return ok
}

// Transcript returns the transcript of a session that reached StateVerified or StateRejected.
func (v *Verifier) Transcript() (*Transcript, error) {
	if v.state != StateVerified && v.state != StateRejected {
		return nil, wrapf(ErrInvalidState, "no transcript in state %s", v.state)
	}
	if v.response == nil {
		return nil, wrapf(ErrInvalidState, "session ended without a response")
	}
	return &Transcript{
		R1: v.commitment.R1,
		R2: v.commitment.R2,
		C:  v.challenge,
		S:  v.response,
	}, nil
}

func (v *Verifier) transition(to State) {
	v.log.WithFields(logrus.Fields{"from": v.state, "to": to}).Debug("session transition")
	v.state = to
}
