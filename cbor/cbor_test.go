package cbor

import (
	"testing"

	"github.com/privacybydesign/chaumpedersen/big"
	"github.com/stretchr/testify/require"
)

type pair struct {
	A *big.Int
	B *big.Int
}

func TestRoundtrip(t *testing.T) {
	before := pair{A: big.NewInt(23), B: new(big.Int).Lsh(big.NewInt(1), 300)}
	bts, err := Marshal(before)
	require.NoError(t, err)

	var after pair
	require.NoError(t, Unmarshal(bts, &after))
	require.Zero(t, before.A.Cmp(after.A))
	require.Zero(t, before.B.Cmp(after.B))
}

func TestDeterministic(t *testing.T) {
	m1 := map[string]*big.Int{"b": big.NewInt(2), "a": big.NewInt(1), "c": big.NewInt(3)}
	m2 := map[string]*big.Int{"c": big.NewInt(3), "a": big.NewInt(1), "b": big.NewInt(2)}
	bts1, err := Marshal(m1)
	require.NoError(t, err)
	bts2, err := Marshal(m2)
	require.NoError(t, err)
	require.Equal(t, bts1, bts2)
}

func TestDuplicateKeys(t *testing.T) {
	// {"a": 1, "a": 2}
	data := []byte{0xa2, 0x61, 0x61, 0x01, 0x61, 0x61, 0x02}
	var dst map[string]int
	require.Error(t, Unmarshal(data, &dst))
}

func TestNegativeRejected(t *testing.T) {
	_, err := Marshal(pair{A: big.NewInt(-1), B: big.NewInt(1)})
	require.Error(t, err)
}
