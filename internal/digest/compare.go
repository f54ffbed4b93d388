package digest

import "strings"

// mismatchSentinel is XOR-ed into the accumulator for every byte position
// the shorter operand does not cover, guaranteeing unequal-length inputs
// never compare equal.
const mismatchSentinel = 0xff

// ConstantTimeEquals reports whether a and b are identical byte sequences.
//
// The comparison accumulates a difference signal by XOR-ing corresponding
// bytes across the full length of the longer input and branches on the
// accumulated signal exactly once, after the full scan. Execution time
// depends only on the longer operand's length, never on where a mismatch
// first occurs. Used for every expected-vs-observed digest comparison.
func ConstantTimeEquals(a, b []byte) bool {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}

	var diff byte
	for i := 0; i < n; i++ {
		if i < len(a) && i < len(b) {
			diff |= a[i] ^ b[i]
		} else {
			// Positions the shorter operand does not cover are a
			// guaranteed mismatch.
			diff |= mismatchSentinel
		}
	}

	return diff == 0
}

// EqualHex compares two hex digest strings in constant time, ignoring case.
// The original tooling emitted uppercase hex while the checksum-file
// convention is lowercase, so both must compare equal.
func EqualHex(a, b string) bool {
	return ConstantTimeEquals([]byte(strings.ToLower(a)), []byte(strings.ToLower(b)))
}
