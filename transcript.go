// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chaumpedersen

import (
	"github.com/go-errors/errors"

	"github.com/privacybydesign/chaumpedersen/big"
	"github.com/privacybydesign/chaumpedersen/cbor"
)

// Transcript is the record {r1, r2, c, s} of one proof session. Together with the public key
// and its group it fully determines whether the proof verifies.
type Transcript struct {
	R1 *big.Int `json:"r1" cbor:"r1"`
	R2 *big.Int `json:"r2" cbor:"r2"`
	C  *big.Int `json:"c" cbor:"c"`
	S  *big.Int `json:"s" cbor:"s"`
}

// Verify checks the transcript against pk.
func (t *Transcript) Verify(pk *PublicKey) bool {
	if t == nil || pk == nil || pk.Group == nil {
		return false
	}
	return pk.Group.Verify(pk, &Commitment{R1: t.R1, R2: t.R2}, t.C, t.S)
}

// MarshalCBOR encodes the transcript as deterministic CBOR.
func (t *Transcript) MarshalCBOR() ([]byte, error) {
	// the alias drops the method set, so the encoder does not recurse into MarshalCBOR
	type plain Transcript
	return cbor.Marshal((*plain)(t))
}

// UnmarshalCBOR decodes a transcript encoded by MarshalCBOR. All four values must be present.
func (t *Transcript) UnmarshalCBOR(data []byte) error {
	type plain Transcript
	var tmp plain
	if err := cbor.Unmarshal(data, &tmp); err != nil {
		return err
	}
	if tmp.R1 == nil || tmp.R2 == nil || tmp.C == nil || tmp.S == nil {
		return errors.New("incomplete transcript")
	}
	*t = Transcript(tmp)
	return nil
}
