package chaumpedersen

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/privacybydesign/chaumpedersen/big"
	"github.com/privacybydesign/chaumpedersen/cbor"
)

func toyTranscript() *Transcript {
	return &Transcript{R1: big.NewInt(8), R2: big.NewInt(4), C: big.NewInt(4), S: big.NewInt(5)}
}

func TestTranscriptVerify(t *testing.T) {
	pk := testKey(t).Public()
	require.True(t, toyTranscript().Verify(pk))

	tampered := toyTranscript()
	tampered.S = big.NewInt(6)
	require.False(t, tampered.Verify(pk))

	require.False(t, (*Transcript)(nil).Verify(pk))
	require.False(t, toyTranscript().Verify(nil))
}

func TestTranscriptJSON(t *testing.T) {
	bts, err := json.Marshal(toyTranscript())
	require.NoError(t, err)

	var decoded Transcript
	require.NoError(t, json.Unmarshal(bts, &decoded))
	require.True(t, decoded.Verify(testKey(t).Public()))
}

func TestTranscriptCBOR(t *testing.T) {
	bts, err := cbor.Marshal(toyTranscript())
	require.NoError(t, err)
	again, err := cbor.Marshal(toyTranscript())
	require.NoError(t, err)
	require.Equal(t, bts, again)

	var decoded Transcript
	require.NoError(t, cbor.Unmarshal(bts, &decoded))
	require.Zero(t, decoded.S.Cmp(big.NewInt(5)))
	require.True(t, decoded.Verify(testKey(t).Public()))
}

func TestTranscriptCBORIncomplete(t *testing.T) {
	bts, err := cbor.Marshal(&Commitment{R1: big.NewInt(8), R2: big.NewInt(4)})
	require.NoError(t, err)

	var decoded Transcript
	require.Error(t, cbor.Unmarshal(bts, &decoded))
	require.Error(t, cbor.Unmarshal([]byte{0xff}, &decoded))
}

func TestCommitmentJSON(t *testing.T) {
	bts, err := json.Marshal(&Commitment{R1: big.NewInt(8), R2: big.NewInt(4)})
	require.NoError(t, err)

	var decoded Commitment
	require.NoError(t, json.Unmarshal(bts, &decoded))
	require.Equal(t, int64(8), decoded.R1.Int64())
	require.Equal(t, int64(4), decoded.R2.Int64())
}
