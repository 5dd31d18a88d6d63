// MIT License
//
// Copyright (c) 2024 sphinx-core
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// go/src/crypto/slhdsa/tweakable/shake256.go
package tweakable

import (
	"golang.org/x/crypto/sha3"

	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/address"
)

// Shake256Tweak is the SHAKE instantiation of the tweakable hashes per
// FIPS 205 section 11.1: every function is SHAKE256 over the concatenation of
// its inputs, with the address encoded between seed and payload.
type Shake256Tweak struct {
	N                   int // security parameter, output length of F/H/Tl/PRF
	MessageDigestLength int // output length of Hmsg
}

// NewShake256Tweak returns the SHAKE256 hash family for the given lengths.
func NewShake256Tweak(n, m int) *Shake256Tweak {
	return &Shake256Tweak{N: n, MessageDigestLength: m}
}

// shake256 squeezes outLen bytes of SHAKE256 over the concatenated inputs.
func shake256(outLen int, inputs ...[]byte) []byte {
	h := sha3.NewShake256()
	for _, in := range inputs {
		h.Write(in)
	}
	out := make([]byte, outLen)
	h.Read(out)
	return out
}

// Hmsg computes SHAKE256(R || PK.seed || PK.root || M, 8m).
func (s *Shake256Tweak) Hmsg(r, pkSeed, pkRoot, msg []byte) []byte {
	return shake256(s.MessageDigestLength, r, pkSeed, pkRoot, msg)
}

// PRF computes SHAKE256(PK.seed || ADRS || SK.seed, 8n).
func (s *Shake256Tweak) PRF(pkSeed, skSeed []byte, adrs *address.ADRS) []byte {
	return shake256(s.N, pkSeed, adrs.Bytes(), skSeed)
}

// PRFmsg computes SHAKE256(SK.prf || opt_rand || M, 8n).
func (s *Shake256Tweak) PRFmsg(skPrf, optRand, msg []byte) []byte {
	return shake256(s.N, skPrf, optRand, msg)
}

// F computes SHAKE256(PK.seed || ADRS || M1, 8n).
func (s *Shake256Tweak) F(pkSeed []byte, adrs *address.ADRS, tmp []byte) []byte {
	return shake256(s.N, pkSeed, adrs.Bytes(), tmp)
}

// H computes SHAKE256(PK.seed || ADRS || M2, 8n).
func (s *Shake256Tweak) H(pkSeed []byte, adrs *address.ADRS, tmp []byte) []byte {
	return shake256(s.N, pkSeed, adrs.Bytes(), tmp)
}

// Tl computes SHAKE256(PK.seed || ADRS || Ml, 8n).
func (s *Shake256Tweak) Tl(pkSeed []byte, adrs *address.ADRS, tmp []byte) []byte {
	return shake256(s.N, pkSeed, adrs.Bytes(), tmp)
}
