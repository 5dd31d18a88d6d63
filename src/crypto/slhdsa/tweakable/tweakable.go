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

// go/src/crypto/slhdsa/tweakable/tweakable.go
package tweakable

import (
	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/address"
)

// TweakableHashFunction is the family of keyed hashes the scheme is built on.
// Each call is bound to its structural position through the ADRS argument; the
// parameter set supplies a concrete instantiation.
type TweakableHashFunction interface {
	// Hmsg computes the m-byte randomized message digest.
	Hmsg(r, pkSeed, pkRoot, msg []byte) []byte
	// PRF derives an n-byte secret value for the position given by adrs.
	PRF(pkSeed, skSeed []byte, adrs *address.ADRS) []byte
	// PRFmsg derives the n-byte signature randomizer from SK.prf.
	PRFmsg(skPrf, optRand, msg []byte) []byte
	// F hashes a single n-byte block (chain step, FORS leaf).
	F(pkSeed []byte, adrs *address.ADRS, tmp []byte) []byte
	// H hashes two concatenated n-byte nodes into their parent.
	H(pkSeed []byte, adrs *address.ADRS, tmp []byte) []byte
	// Tl compresses an arbitrary-length block into n bytes (WOTS+ and FORS
	// public key compression).
	Tl(pkSeed []byte, adrs *address.ADRS, tmp []byte) []byte
}
