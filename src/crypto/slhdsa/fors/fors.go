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

// go/src/crypto/slhdsa/fors/fors.go

// Package fors implements the Forest of Random Subsets few-time signature of
// SLH-DSA (FIPS 205 section 8). The message digest is split into k groups of
// a bits, each selecting one leaf of a small Merkle tree of height a; the
// signature reveals the selected leaves' secrets plus their authentication
// paths, and the k roots compress into the FORS public key.
package fors

import (
	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/address"
	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/cache"
	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/parameters"
	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/utils"
)

// Fors_SKgen derives the secret value of FORS leaf idx (Algorithm 14).
func Fors_SKgen(params *parameters.Parameters, skSeed, pkSeed []byte, adrs *address.ADRS, idx uint32) []byte {
	skAdrs := adrs.Copy()
	skAdrs.SetType(address.FORS_PRF)
	skAdrs.SetKeyPairAddress(adrs.GetKeyPairAddress())
	skAdrs.SetTreeIndex(idx)
	return params.Tweak.PRF(pkSeed, skSeed, skAdrs)
}

// Fors_node computes the FORS Merkle node at height z, index i (Algorithm 15).
// Node values are memoized in nc so sibling path computations over shared
// subtrees within one call reuse work.
func Fors_node(params *parameters.Parameters, skSeed []byte, i, z uint32, pkSeed []byte, adrs *address.ADRS, nc *cache.NodeCache) []byte {
	key := cache.Key{
		Kind:   cache.KindFORS,
		Layer:  adrs.GetLayerAddress(),
		Tree:   adrs.GetTreeAddress(),
		Height: z,
		Index:  i,
	}
	if val, ok := nc.Get(key); ok {
		return val
	}

	var node []byte
	if z == 0 {
		sk := Fors_SKgen(params, skSeed, pkSeed, adrs, i)
		adrs.SetTreeHeight(0)
		adrs.SetTreeIndex(i)
		node = params.Tweak.F(pkSeed, adrs, sk)
	} else {
		lnode := Fors_node(params, skSeed, i<<1, z-1, pkSeed, adrs, nc)
		rnode := Fors_node(params, skSeed, (i<<1)+1, z-1, pkSeed, adrs, nc)
		adrs.SetTreeHeight(z)
		adrs.SetTreeIndex(i)
		node = params.Tweak.H(pkSeed, adrs, append(append([]byte{}, lnode...), rnode...))
	}

	nc.Put(key, node)
	return node
}

// Fors_sign signs the message digest region md (Algorithm 16). The output is
// k blocks of (a+1)*n bytes: the revealed leaf secret followed by its
// authentication path.
func Fors_sign(params *parameters.Parameters, md, skSeed, pkSeed []byte, adrs *address.ADRS, nc *cache.NodeCache) []byte {
	sig := make([]byte, 0, params.K*(params.A+1)*params.N)
	indices := utils.Base2b(md, params.A, params.K)
	for i := 0; i < params.K; i++ {
		sig = append(sig, Fors_SKgen(params, skSeed, pkSeed, adrs, uint32(i<<params.A)+indices[i])...)
		for j := 0; j < params.A; j++ {
			s := (indices[i] >> j) ^ 1
			sig = append(sig, Fors_node(params, skSeed, uint32(i<<(params.A-j))+s, uint32(j), pkSeed, adrs, nc)...)
		}
	}
	return sig
}

// Fors_pkFromSig recomputes the candidate FORS public key from a signature
// (Algorithm 17): each revealed leaf is hashed up its authentication path to a
// candidate root, and the k roots compress under a FORS_ROOTS address. The
// result only matches the real public key for an authentic signature.
func Fors_pkFromSig(params *parameters.Parameters, sig, md, pkSeed []byte, adrs *address.ADRS) []byte {
	n := params.N
	indices := utils.Base2b(md, params.A, params.K)
	roots := make([]byte, 0, params.K*n)
	for i := 0; i < params.K; i++ {
		sk := sig[i*(params.A+1)*n : (i*(params.A+1)+1)*n]
		adrs.SetTreeHeight(0)
		adrs.SetTreeIndex(uint32(i<<params.A) + indices[i])
		node := params.Tweak.F(pkSeed, adrs, sk)

		auth := sig[(i*(params.A+1)+1)*n : (i+1)*(params.A+1)*n]
		for j := 0; j < params.A; j++ {
			adrs.SetTreeHeight(uint32(j) + 1)
			// Right shift halves the index, which is exactly the parent
			// position regardless of which sibling we hold.
			adrs.SetTreeIndex(adrs.GetTreeIndex() >> 1)
			authJ := auth[j*n : (j+1)*n]
			if (indices[i]>>j)&1 == 0 {
				node = params.Tweak.H(pkSeed, adrs, append(append([]byte{}, node...), authJ...))
			} else {
				node = params.Tweak.H(pkSeed, adrs, append(append([]byte{}, authJ...), node...))
			}
		}
		roots = append(roots, node...)
	}

	pkAdrs := adrs.Copy()
	pkAdrs.SetType(address.FORS_ROOTS)
	pkAdrs.SetKeyPairAddress(adrs.GetKeyPairAddress())
	return params.Tweak.Tl(pkSeed, pkAdrs, roots)
}
