package rng

import (
	"math/big"
	"strings"
)

var (
	// seedModulus is 2^120, the range of the on-chain seed.
	seedModulus = new(big.Int).Lsh(big.NewInt(1), 120)
	u128Mask    = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	seedFactor  = big.NewInt(131)
)

// DeriveSeed128 derives the root seed from an account identifier, a
// monotonically increasing index and the input text.
//
// account and index are parsed as decimal or 0x-prefixed hexadecimal;
// anything else counts as 0. The account is folded to 128 bits by XOR of its
// low and high halves, the index is added, and every UTF-8 byte of text is
// absorbed as state = state*131 + b. All steps are reduced modulo 2^120.
func DeriveSeed128(account, index, text string) *big.Int {
	acct := parseSeedInt(account)
	low := new(big.Int).And(acct, u128Mask)
	high := new(big.Int).And(new(big.Int).Rsh(acct, 128), u128Mask)

	state := new(big.Int).Xor(low, high)
	state.Mod(state, seedModulus)

	state.Add(state, parseSeedInt(index))
	state.Mod(state, seedModulus)

	b := new(big.Int)
	for i := 0; i < len(text); i++ {
		state.Mul(state, seedFactor)
		state.Add(state, b.SetUint64(uint64(text[i])))
		state.Mod(state, seedModulus)
	}

	return state
}

// DeriveSeed32 returns the low 32 bits of DeriveSeed128.
func DeriveSeed32(account, index, text string) uint32 {
	seed := DeriveSeed128(account, index, text)

	return uint32(new(big.Int).And(seed, big.NewInt(0xffffffff)).Uint64())
}

// parseSeedInt parses a non-negative decimal or 0x-hex integer, returning 0
// for empty or malformed input.
func parseSeedInt(s string) *big.Int {
	s = strings.TrimSpace(s)
	v := new(big.Int)
	if s == "" {
		return v
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		for i := 2; i < len(s); i++ {
			if !isHexDigit(s[i]) {
				return v
			}
		}
		if _, ok := v.SetString(s[2:], 16); !ok {
			return new(big.Int)
		}
		return v
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return v
		}
	}
	if _, ok := v.SetString(s, 10); !ok {
		return new(big.Int)
	}

	return v
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}
