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

// go/src/crypto/slhdsa/hypertree/hypertree.go

// Package hypertree implements the hyper-tree of SLH-DSA (FIPS 205 section 7):
// d XMSS layers chained so that a single published root authenticates 2^h
// FORS instances, each layer signing the root of the layer below.
package hypertree

import (
	"crypto/subtle"

	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/address"
	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/cache"
	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/parameters"
	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/xmss"
)

// Ht_PKgen computes the hyper-tree root: the XMSS root of the single tree at
// the top layer d-1.
func Ht_PKgen(params *parameters.Parameters, skSeed, pkSeed []byte, nc *cache.NodeCache) []byte {
	adrs := address.New(uint32(params.D-1), 0)
	return xmss.Xmss_node(params, skSeed, 0, uint32(params.Hprime), pkSeed, adrs, nc)
}

// Ht_sign signs msg (the FORS public key) with the hyper-tree (Algorithm 12).
// Layer 0 signs msg directly; every layer above signs the recomputed root of
// the layer below. idxTree and idxLeaf address the layer-0 instance; the
// indices for layer j+1 are obtained by consuming h' bits of idxTree, exactly
// mirrored in Ht_verify.
func Ht_sign(params *parameters.Parameters, msg, skSeed, pkSeed []byte, idxTree uint64, idxLeaf uint32, nc *cache.NodeCache) []byte {
	adrs := address.New(0, idxTree)

	sigHt := xmss.Xmss_sign(params, msg, skSeed, idxLeaf, pkSeed, adrs, nc)
	root := xmss.Xmss_pkFromSig(params, idxLeaf, sigHt, msg, pkSeed, adrs)

	for j := 1; j < params.D; j++ {
		idxLeaf = uint32(idxTree & (uint64(1)<<params.Hprime - 1))
		idxTree >>= params.Hprime
		adrs.SetLayerAddress(uint32(j))
		adrs.SetTreeAddress(idxTree)
		sigTmp := xmss.Xmss_sign(params, root, skSeed, idxLeaf, pkSeed, adrs, nc)
		sigHt = append(sigHt, sigTmp...)
		if j < params.D-1 {
			root = xmss.Xmss_pkFromSig(params, idxLeaf, sigTmp, root, pkSeed, adrs)
		}
	}
	return sigHt
}

// Ht_verify checks that sigHt authenticates msg against the published root
// (Algorithm 13). Each layer's candidate root becomes the message for the
// layer above; after d layers the candidate must equal pkRoot. The final
// comparison runs in constant time.
func Ht_verify(params *parameters.Parameters, msg, sigHt, pkSeed []byte, idxTree uint64, idxLeaf uint32, pkRoot []byte) bool {
	if len(sigHt) != (params.H+params.D*params.Len)*params.N {
		return false
	}

	adrs := address.New(0, idxTree)
	layerBytes := (params.Hprime + params.Len) * params.N
	node := xmss.Xmss_pkFromSig(params, idxLeaf, sigHt[:layerBytes], msg, pkSeed, adrs)

	for j := 1; j < params.D; j++ {
		idxLeaf = uint32(idxTree & (uint64(1)<<params.Hprime - 1))
		idxTree >>= params.Hprime
		adrs.SetLayerAddress(uint32(j))
		adrs.SetTreeAddress(idxTree)
		sigTmp := sigHt[j*layerBytes : (j+1)*layerBytes]
		node = xmss.Xmss_pkFromSig(params, idxLeaf, sigTmp, node, pkSeed, adrs)
	}
	return subtle.ConstantTimeCompare(node, pkRoot) == 1
}
