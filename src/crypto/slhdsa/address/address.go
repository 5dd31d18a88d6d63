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

// go/src/crypto/slhdsa/address/address.go
package address

import "encoding/binary"

// Address word types per FIPS 205 Table 1. Every hash call in the scheme is
// keyed by an ADRS so that no two distinct hash invocations share an input
// domain.
const (
	WOTS_HASH  uint32 = 0 // WOTS+ chain hashing
	WOTS_PK    uint32 = 1 // WOTS+ public key compression
	TREE       uint32 = 2 // XMSS Merkle tree node
	FORS_TREE  uint32 = 3 // FORS Merkle tree node
	FORS_ROOTS uint32 = 4 // FORS root compression
	WOTS_PRF   uint32 = 5 // WOTS+ secret chain-start derivation
	FORS_PRF   uint32 = 6 // FORS secret leaf derivation
)

// ADRS is the 32-byte hash address:
//
//	| layer (4) | tree (12) | type (4) | type-specific (12) |
//
// The type-specific words are reused contextually: key pair / chain / hash for
// WOTS+ contexts, and key pair / tree height / tree index for Merkle and FORS
// contexts. All words are big-endian.
type ADRS [32]byte

// New returns an address initialized with the given hyper-tree layer and tree
// index, all other words zero.
func New(layer uint32, tree uint64) *ADRS {
	adrs := new(ADRS)
	adrs.SetLayerAddress(layer)
	adrs.SetTreeAddress(tree)
	return adrs
}

// Copy returns an independent copy of the address.
func (a *ADRS) Copy() *ADRS {
	c := new(ADRS)
	copy(c[:], a[:])
	return c
}

// Bytes returns the canonical 32-byte encoding fed into the tweakable hashes.
func (a *ADRS) Bytes() []byte {
	out := make([]byte, 32)
	copy(out, a[:])
	return out
}

// SetLayerAddress sets the hyper-tree layer word.
func (a *ADRS) SetLayerAddress(layer uint32) {
	binary.BigEndian.PutUint32(a[0:4], layer)
}

// GetLayerAddress returns the hyper-tree layer word.
func (a *ADRS) GetLayerAddress() uint32 {
	return binary.BigEndian.Uint32(a[0:4])
}

// SetTreeAddress sets the tree index within the layer. The tree word is 12
// bytes wide; 64 bits cover every parameter set in FIPS 205, so the upper four
// bytes stay zero.
func (a *ADRS) SetTreeAddress(tree uint64) {
	binary.BigEndian.PutUint32(a[4:8], 0)
	binary.BigEndian.PutUint64(a[8:16], tree)
}

// GetTreeAddress returns the low 64 bits of the tree index word.
func (a *ADRS) GetTreeAddress() uint64 {
	return binary.BigEndian.Uint64(a[8:16])
}

// SetType sets the address type word and zeroes the three type-specific words,
// as required whenever an address switches context.
func (a *ADRS) SetType(t uint32) {
	binary.BigEndian.PutUint32(a[16:20], t)
	binary.BigEndian.PutUint32(a[20:24], 0)
	binary.BigEndian.PutUint32(a[24:28], 0)
	binary.BigEndian.PutUint32(a[28:32], 0)
}

// SetKeyPairAddress selects the WOTS+ or FORS instance within the tree.
func (a *ADRS) SetKeyPairAddress(i uint32) {
	binary.BigEndian.PutUint32(a[20:24], i)
}

// GetKeyPairAddress returns the key pair word.
func (a *ADRS) GetKeyPairAddress() uint32 {
	return binary.BigEndian.Uint32(a[20:24])
}

// SetChainAddress selects the WOTS+ hash chain.
func (a *ADRS) SetChainAddress(i uint32) {
	binary.BigEndian.PutUint32(a[24:28], i)
}

// SetHashAddress selects the position along a WOTS+ hash chain.
func (a *ADRS) SetHashAddress(i uint32) {
	binary.BigEndian.PutUint32(a[28:32], i)
}

// SetTreeHeight sets the Merkle node height. Shares its word with the chain
// address; the address type keeps the two contexts separated.
func (a *ADRS) SetTreeHeight(h uint32) {
	binary.BigEndian.PutUint32(a[24:28], h)
}

// SetTreeIndex sets the Merkle node index within its height.
func (a *ADRS) SetTreeIndex(i uint32) {
	binary.BigEndian.PutUint32(a[28:32], i)
}

// GetTreeIndex returns the Merkle node index word.
func (a *ADRS) GetTreeIndex() uint32 {
	return binary.BigEndian.Uint32(a[28:32])
}
