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

// go/src/crypto/slhdsa/xmss/xmss.go

// Package xmss implements the XMSS layer of SLH-DSA (FIPS 205 section 6): a
// Merkle tree of height h' whose leaves are WOTS+ public keys, so one root
// authenticates 2^h' one-time key pairs.
package xmss

import (
	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/address"
	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/cache"
	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/parameters"
	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/wots"
)

// Xmss_node computes the Merkle node at height z, index i (Algorithm 9). A
// height-0 node is a WOTS+ public key; inner nodes hash their two children
// under a TREE address. Values are memoized in nc per call.
func Xmss_node(params *parameters.Parameters, skSeed []byte, i, z uint32, pkSeed []byte, adrs *address.ADRS, nc *cache.NodeCache) []byte {
	key := cache.Key{
		Kind:   cache.KindXMSS,
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
		adrs.SetType(address.WOTS_HASH)
		adrs.SetKeyPairAddress(i)
		node = wots.Wots_PKgen(params, skSeed, pkSeed, adrs)
	} else {
		lnode := Xmss_node(params, skSeed, i<<1, z-1, pkSeed, adrs, nc)
		rnode := Xmss_node(params, skSeed, (i<<1)+1, z-1, pkSeed, adrs, nc)
		adrs.SetType(address.TREE)
		adrs.SetTreeHeight(z)
		adrs.SetTreeIndex(i)
		node = params.Tweak.H(pkSeed, adrs, append(append([]byte{}, lnode...), rnode...))
	}

	nc.Put(key, node)
	return node
}

// Xmss_sign signs an n-byte message with the WOTS+ key pair at leaf idx and
// appends the authentication path, one sibling per level (Algorithm 10).
func Xmss_sign(params *parameters.Parameters, msg, skSeed []byte, idx uint32, pkSeed []byte, adrs *address.ADRS, nc *cache.NodeCache) []byte {
	auth := make([]byte, 0, params.Hprime*params.N)
	for j := 0; j < params.Hprime; j++ {
		k := (idx >> j) ^ 1
		auth = append(auth, Xmss_node(params, skSeed, k, uint32(j), pkSeed, adrs, nc)...)
	}

	adrs.SetType(address.WOTS_HASH)
	adrs.SetKeyPairAddress(idx)
	return append(wots.Wots_sign(params, msg, skSeed, pkSeed, adrs), auth...)
}

// Xmss_pkFromSig walks an XMSS signature back up to a candidate root
// (Algorithm 11): the WOTS+ public key is recomputed from the signature, then
// hashed with each authentication path sibling, left or right according to the
// bits of idx.
func Xmss_pkFromSig(params *parameters.Parameters, idx uint32, sigXmss, msg, pkSeed []byte, adrs *address.ADRS) []byte {
	n := params.N

	adrs.SetType(address.WOTS_HASH)
	adrs.SetKeyPairAddress(idx)
	sig, auth := sigXmss[:params.Len*n], sigXmss[params.Len*n:]
	node := wots.Wots_pkFromSig(params, sig, msg, pkSeed, adrs)

	adrs.SetType(address.TREE)
	adrs.SetTreeIndex(idx)
	for k := 0; k < params.Hprime; k++ {
		adrs.SetTreeHeight(uint32(k) + 1)
		// Halving the index yields the parent position for either sibling.
		adrs.SetTreeIndex(adrs.GetTreeIndex() >> 1)
		authK := auth[k*n : (k+1)*n]
		if (idx>>k)&1 == 0 {
			node = params.Tweak.H(pkSeed, adrs, append(append([]byte{}, node...), authK...))
		} else {
			node = params.Tweak.H(pkSeed, adrs, append(append([]byte{}, authK...), node...))
		}
	}
	return node
}
