package safeprime

import (
	"github.com/privacybydesign/chaumpedersen/big"
)

// Maximum number of bits a convenient safe prime may exceed the requested size by.
const convenientRange = 100

// A convenient safe prime is a safe prime of the form 2^exp - diff for small positive diff.
// Reduction modulo such a prime needs no division.
type convenientSafePrime struct {
	Exp  int
	Diff int
}

var convenientSafePrimes = []convenientSafePrime{
	{787, 7341},
	{836, 12077},
	{912, 7577},
	{933, 6249},
	{985, 3645},
	{1008, 3317},
	{1259, 2505},
	{1307, 4425},
	{1503, 1629},
	{1567, 3309},
	{2043, 11301},
	{2145, 429},
	{2639, 163185},
	{2659, 91209},
	{2661, 71745},
	{2705, 5445},
	{4099, 5025},
	{4682, 190265},
	{4743, 268629},
}

// Convenient returns the smallest known safe prime of the form 2^e - d with at least bitsize
// bits and at most bitsize+100 bits, or nil if there is none.
func Convenient(bitsize int) *big.Int {
	for _, cp := range convenientSafePrimes {
		if cp.Exp >= bitsize && cp.Exp-bitsize < convenientRange {
			var ret, diff big.Int
			diff.SetUint64(uint64(cp.Diff))
			ret.SetUint64(1)
			ret.Lsh(&ret, uint(cp.Exp))
			ret.Sub(&ret, &diff)
			return &ret
		}
	}
	return nil
}
