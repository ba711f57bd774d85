// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chaumpedersen

import (
	"crypto/rand"
	"io"

	"github.com/privacybydesign/chaumpedersen/big"
	"github.com/privacybydesign/chaumpedersen/internal/common"
)

// RandomSource supplies the nonces, challenges and secrets of the protocol. Failures are
// reported to the caller as is; the protocol never retries.
type RandomSource interface {
	// UniformBelow returns an integer drawn uniformly from [0, bound).
	UniformBelow(bound *big.Int) (*big.Int, error)
	// RandomString returns a string of the given length drawn uniformly from [A-Za-z0-9].
	RandomString(length int) (string, error)
}

// ReaderSource is a RandomSource drawing its bytes from an io.Reader. It is safe for concurrent
// use if the underlying reader is.
type ReaderSource struct {
	rnd io.Reader
}

// NewRandomSource returns a RandomSource reading from rnd.
func NewRandomSource(rnd io.Reader) *ReaderSource {
	return &ReaderSource{rnd: rnd}
}

// DefaultRandomSource returns a RandomSource backed by crypto/rand.
func DefaultRandomSource() *ReaderSource {
	return NewRandomSource(rand.Reader)
}

// NewSeededRandomSource returns a deterministic RandomSource: two sources created from the same
// seed produce the same values. Use it to make tests reproducible; never to produce nonces for
// proofs that matter, since a known seed reveals the secret from a single transcript.
func NewSeededRandomSource(seed *[32]byte) (*ReaderSource, error) {
	cprng, err := common.NewCPRNG(seed)
	if err != nil {
		return nil, err
	}
	return NewRandomSource(cprng), nil
}

func (s *ReaderSource) UniformBelow(bound *big.Int) (*big.Int, error) {
	if bound == nil || bound.Sign() <= 0 {
		return nil, wrapf(ErrInvalidRange, "bound must be positive, got %v", bound)
	}
	r, err := big.RandInt(s.rnd, bound)
	if err != nil {
		return nil, wrapf(ErrRandomnessUnavailable, "%v", err)
	}
	return r, nil
}

func (s *ReaderSource) RandomString(length int) (string, error) {
	if length < 0 {
		return "", wrapf(ErrInvalidRange, "negative string length %d", length)
	}

	// Bytes at or above the largest multiple of the alphabet size are rejected, so that every
	// character is equally likely.
	const limit = 256 - 256%len(randomStringAlphabet)
	result := make([]byte, 0, length)
	buf := make([]byte, length+length/4+1)
	for len(result) < length {
		if _, err := io.ReadFull(s.rnd, buf); err != nil {
			return "", wrapf(ErrRandomnessUnavailable, "%v", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			result = append(result, randomStringAlphabet[int(b)%len(randomStringAlphabet)])
			if len(result) == length {
				break
			}
		}
	}
	return string(result), nil
}
