package big

import (
	"crypto/rand"
	"encoding/json"
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/require"
)

func testBase64(t *testing.T, bigint *Int) *Int {
	bts, err := json.Marshal(bigint)
	require.NoError(t, err)
	unmarshaled := new(Int)
	err = json.Unmarshal(bts, unmarshaled)
	require.NoError(t, err)
	require.Zero(t, bigint.Cmp(unmarshaled))
	return unmarshaled
}

func TestInt(t *testing.T) {
	var i int64 = 42
	bigint := NewInt(i)
	unmarshaled := testBase64(t, bigint)
	require.Equal(t, i, unmarshaled.Int64())
}

func TestZero(t *testing.T) {
	var i int64 = 0
	bigint := NewInt(i)
	unmarshaled := testBase64(t, bigint)
	require.Equal(t, i, unmarshaled.Int64())
}

func TestBigInt(t *testing.T) {
	s := "8931748931759284679376938475395713602744853768923750102"
	bigint, ok := new(Int).SetString(s, 10)
	require.True(t, ok)
	unmarshaled := testBase64(t, bigint)
	require.Equal(t, s, unmarshaled.String())
}

func TestRandom(t *testing.T) {
	max := new(Int).Lsh(NewInt(1), 100)
	bigint, err := RandInt(rand.Reader, max)
	require.NoError(t, err)
	testBase64(t, bigint)
}

func TestNegative(t *testing.T) {
	bigint := NewInt(-42)
	_, err := json.Marshal(bigint)
	require.Error(t, err)
	_, err = bigint.MarshalBinary()
	require.Error(t, err)
	_, err = xml.Marshal(bigint)
	require.Error(t, err)
}

func TestBase10JSON(t *testing.T) {
	var i Int
	require.NoError(t, json.Unmarshal([]byte("12345"), &i))
	require.Equal(t, int64(12345), i.Int64())
	require.Error(t, json.Unmarshal([]byte("-12"), &i))
}

func TestBinary(t *testing.T) {
	bigint, ok := new(Int).SetString("340282366920938463463374607431768211457", 10)
	require.True(t, ok)
	bts, err := bigint.MarshalBinary()
	require.NoError(t, err)

	var decoded Int
	require.NoError(t, decoded.UnmarshalBinary(bts))
	require.Zero(t, bigint.Cmp(&decoded))
}

func TestXML(t *testing.T) {
	type wrapper struct {
		XMLName xml.Name `xml:"W"`
		V       *Int     `xml:"V"`
	}
	bts, err := xml.Marshal(wrapper{V: NewInt(1234567)})
	require.NoError(t, err)
	require.Equal(t, "<W><V>1234567</V></W>", string(bts))

	var w wrapper
	require.NoError(t, xml.Unmarshal(bts, &w))
	require.Equal(t, int64(1234567), w.V.Int64())

	require.Error(t, xml.Unmarshal([]byte("<W><V>abc</V></W>"), &w))
}
