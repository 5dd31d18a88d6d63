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

// go/src/crypto/slhdsa/parameters/parameters.go
package parameters

import (
	"fmt"
	"math"

	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/tweakable"
	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/utils"
)

// Parameters fixes one SLH-DSA instantiation. A value is built once through a
// constructor and never mutated afterwards; every operation takes it by
// reference, so several security levels can coexist in one process.
type Parameters struct {
	N         int  // Security parameter (hash output length in bytes)
	W         int  // Winternitz parameter
	LogW      int  // log2(W)
	H         int  // Total height of the hyper-tree
	D         int  // Number of hyper-tree layers
	Hprime    int  // Height of each layer, H / D
	K         int  // Number of FORS trees
	A         int  // Height of each FORS tree
	T         int  // Number of leaves per FORS tree, 2^A
	Len1      int  // WOTS+ message digits
	Len2      int  // WOTS+ checksum digits
	Len       int  // Total WOTS+ digits, Len1 + Len2
	M         int  // Message digest length in bytes
	RANDOMIZE bool // Randomized signing; false derives the randomizer deterministically

	Tweak tweakable.TweakableHashFunction
}

// MakeSLHDSAParams builds a parameter set from raw values. It rejects
// configurations the scheme cannot support: such faults indicate a bug in the
// caller, never adversarial input.
func MakeSLHDSAParams(n, w, h, d, k, a int, hashFunc string, randomize bool) (*Parameters, error) {
	if n <= 0 || w < 4 || w&(w-1) != 0 {
		return nil, fmt.Errorf("invalid parameters: n=%d, w=%d (w must be a power of two >= 4)", n, w)
	}
	if d <= 0 || h <= 0 || h%d != 0 {
		return nil, fmt.Errorf("invalid parameters: h=%d must be divisible by d=%d", h, d)
	}
	if h-h/d > 64 || h/d > 32 {
		return nil, fmt.Errorf("invalid parameters: h=%d, d=%d exceed the 64-bit tree index space", h, d)
	}
	if k <= 0 || a <= 0 || a > 32 {
		return nil, fmt.Errorf("invalid parameters: k=%d, a=%d", k, a)
	}

	params := new(Parameters)
	params.N = n
	params.W = w
	params.LogW = int(math.Log2(float64(w)))
	params.H = h
	params.D = d
	params.Hprime = h / d
	params.K = k
	params.A = a
	params.T = 1 << a
	params.RANDOMIZE = randomize
	params.Len1 = int(math.Ceil(8 * float64(n) / math.Log2(float64(w))))
	params.Len2 = int(math.Floor(math.Log2(float64(params.Len1*(w-1)))/math.Log2(float64(w))) + 1)
	params.Len = params.Len1 + params.Len2
	params.M = params.MDLen() + params.IdxTreeLen() + params.IdxLeafLen()

	switch hashFunc {
	case "SHAKE256":
		params.Tweak = tweakable.NewShake256Tweak(n, params.M)
	default:
		return nil, fmt.Errorf("unsupported hash function %q", hashFunc)
	}
	return params, nil
}

// SLH-DSA parameter sets per FIPS 205 Table 2, SHAKE instantiation.

// MakeSLHDSASHAKE128s returns the SLH-DSA-SHAKE-128s parameter set.
func MakeSLHDSASHAKE128s(randomize bool) *Parameters {
	return mustMake(16, 16, 63, 7, 14, 12, randomize)
}

// MakeSLHDSASHAKE128f returns the SLH-DSA-SHAKE-128f parameter set.
func MakeSLHDSASHAKE128f(randomize bool) *Parameters {
	return mustMake(16, 16, 66, 22, 33, 6, randomize)
}

// MakeSLHDSASHAKE192s returns the SLH-DSA-SHAKE-192s parameter set.
func MakeSLHDSASHAKE192s(randomize bool) *Parameters {
	return mustMake(24, 16, 63, 7, 17, 14, randomize)
}

// MakeSLHDSASHAKE192f returns the SLH-DSA-SHAKE-192f parameter set.
func MakeSLHDSASHAKE192f(randomize bool) *Parameters {
	return mustMake(24, 16, 66, 22, 33, 8, randomize)
}

// MakeSLHDSASHAKE256s returns the SLH-DSA-SHAKE-256s parameter set.
func MakeSLHDSASHAKE256s(randomize bool) *Parameters {
	return mustMake(32, 16, 64, 8, 22, 14, randomize)
}

// MakeSLHDSASHAKE256f returns the SLH-DSA-SHAKE-256f parameter set.
func MakeSLHDSASHAKE256f(randomize bool) *Parameters {
	return mustMake(32, 16, 68, 17, 35, 9, randomize)
}

func mustMake(n, w, h, d, k, a int, randomize bool) *Parameters {
	params, err := MakeSLHDSAParams(n, w, h, d, k, a, "SHAKE256", randomize)
	if err != nil {
		panic(err)
	}
	return params
}

// MDLen returns the byte length of the FORS message digest region.
func (p *Parameters) MDLen() int {
	return utils.CeilDiv(p.K*p.A, 8)
}

// IdxTreeLen returns the byte length of the tree index region of the digest.
func (p *Parameters) IdxTreeLen() int {
	return utils.CeilDiv(p.H-p.H/p.D, 8)
}

// IdxLeafLen returns the byte length of the leaf index region of the digest.
func (p *Parameters) IdxLeafLen() int {
	return utils.CeilDiv(p.H/p.D, 8)
}

// SecretKeyBytes returns the serialized secret key length: SK.seed, SK.prf,
// PK.seed and PK.root of N bytes each.
func (p *Parameters) SecretKeyBytes() int {
	return 4 * p.N
}

// PublicKeyBytes returns the serialized public key length: PK.seed and PK.root.
func (p *Parameters) PublicKeyBytes() int {
	return 2 * p.N
}

// SignatureBytes returns the exact serialized signature length:
// (1 + k*(a+1) + h + d*len) * n.
func (p *Parameters) SignatureBytes() int {
	return (1 + p.K*(p.A+1) + p.H + p.D*p.Len) * p.N
}
