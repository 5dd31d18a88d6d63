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

// go/src/crypto/slhdsa/sphincs/sphincs.go

// Package sphincs implements the SLH-DSA top-level protocol: stateless key
// generation, signing and verification (FIPS 205 section 9). Signing never
// persists or advances any secret state between invocations.
package sphincs

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math"

	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/address"
	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/cache"
	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/fors"
	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/hypertree"
	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/parameters"
	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/utils"
)

// SPHINCS_PK is the public key: (PK.seed, PK.root). Immutable for the lifetime
// of the key pair.
type SPHINCS_PK struct {
	PKseed []byte
	PKroot []byte
}

// SPHINCS_SK is the secret key: (SK.seed, SK.prf, PK.seed, PK.root). SK.seed
// and SK.prf must never leave the signer.
type SPHINCS_SK struct {
	SKseed []byte
	SKprf  []byte
	PKseed []byte
	PKroot []byte
}

// SPHINCS_SIG is one signature: the randomizer R, the FORS signature over the
// message digest, and the hyper-tree signature over the FORS public key.
type SPHINCS_SIG struct {
	R        []byte
	SIG_FORS []byte
	SIG_HT   []byte
}

// Spx_keygen generates a fresh key pair from the system entropy source.
func Spx_keygen(params *parameters.Parameters) (*SPHINCS_SK, *SPHINCS_PK, error) {
	if params == nil || params.Tweak == nil {
		return nil, nil, errors.New("sphincs: parameters are not initialized")
	}

	skSeed := make([]byte, params.N)
	if _, err := rand.Read(skSeed); err != nil {
		return nil, nil, fmt.Errorf("sphincs: reading randomness: %w", err)
	}
	skPrf := make([]byte, params.N)
	if _, err := rand.Read(skPrf); err != nil {
		return nil, nil, fmt.Errorf("sphincs: reading randomness: %w", err)
	}
	pkSeed := make([]byte, params.N)
	if _, err := rand.Read(pkSeed); err != nil {
		return nil, nil, fmt.Errorf("sphincs: reading randomness: %w", err)
	}

	return Spx_keygenFromSeed(params, skSeed, skPrf, pkSeed)
}

// Spx_keygenFromSeed derives a key pair deterministically from the given
// seeds, each of which must be exactly n bytes. The public root is the XMSS
// root of the top hyper-tree layer (layer d-1, tree 0).
func Spx_keygenFromSeed(params *parameters.Parameters, skSeed, skPrf, pkSeed []byte) (*SPHINCS_SK, *SPHINCS_PK, error) {
	if params == nil || params.Tweak == nil {
		return nil, nil, errors.New("sphincs: parameters are not initialized")
	}
	if len(skSeed) != params.N || len(skPrf) != params.N || len(pkSeed) != params.N {
		return nil, nil, fmt.Errorf("sphincs: seed length must be %d bytes", params.N)
	}

	nc := cache.NewNodeCache(cache.DefaultCacheSize)
	pkRoot := hypertree.Ht_PKgen(params, skSeed, pkSeed, nc)

	sk := &SPHINCS_SK{
		SKseed: append([]byte{}, skSeed...),
		SKprf:  append([]byte{}, skPrf...),
		PKseed: append([]byte{}, pkSeed...),
		PKroot: pkRoot,
	}
	pk := &SPHINCS_PK{
		PKseed: append([]byte{}, pkSeed...),
		PKroot: append([]byte{}, pkRoot...),
	}
	return sk, pk, nil
}

// Spx_sign signs a message. With params.RANDOMIZE the randomizer R is derived
// from fresh entropy; otherwise opt_rand is PK.seed and the whole signature is
// a deterministic function of (SK, M). A malformed secret key is a caller bug
// and surfaces as an error, never as a bad signature.
func Spx_sign(params *parameters.Parameters, msg []byte, sk *SPHINCS_SK) (*SPHINCS_SIG, error) {
	if params == nil || params.Tweak == nil {
		return nil, errors.New("sphincs: parameters are not initialized")
	}
	if sk == nil || len(sk.SKseed) != params.N || len(sk.SKprf) != params.N ||
		len(sk.PKseed) != params.N || len(sk.PKroot) != params.N {
		return nil, fmt.Errorf("sphincs: secret key components must be %d bytes", params.N)
	}

	optRand := sk.PKseed
	if params.RANDOMIZE {
		optRand = make([]byte, params.N)
		if _, err := rand.Read(optRand); err != nil {
			return nil, fmt.Errorf("sphincs: reading randomness: %w", err)
		}
	}
	r := params.Tweak.PRFmsg(sk.SKprf, optRand, msg)

	digest := params.Tweak.Hmsg(r, sk.PKseed, sk.PKroot, msg)
	md, idxTree, idxLeaf := splitDigest(params, digest)

	// Work on copies so chain computations can never alias into the key.
	skSeed := append([]byte{}, sk.SKseed...)
	pkSeed := append([]byte{}, sk.PKseed...)

	adrs := address.New(0, idxTree)
	adrs.SetType(address.FORS_TREE)
	adrs.SetKeyPairAddress(idxLeaf)

	nc := cache.NewNodeCache(cache.DefaultCacheSize)
	sigFors := fors.Fors_sign(params, md, skSeed, pkSeed, adrs, nc)
	pkFors := fors.Fors_pkFromSig(params, sigFors, md, pkSeed, adrs)

	sigHt := hypertree.Ht_sign(params, pkFors, skSeed, pkSeed, idxTree, idxLeaf, nc)

	return &SPHINCS_SIG{R: r, SIG_FORS: sigFors, SIG_HT: sigHt}, nil
}

// Spx_verify reports whether sig is a valid signature on msg under pk. Any
// malformed or tampered input yields false; verification of attacker-supplied
// data never returns an error or panics. A signature whose components do not
// have the exact parameter-determined lengths is rejected before any tree
// computation.
func Spx_verify(params *parameters.Parameters, msg []byte, sig *SPHINCS_SIG, pk *SPHINCS_PK) bool {
	if params == nil || params.Tweak == nil || sig == nil || pk == nil {
		return false
	}
	if len(pk.PKseed) != params.N || len(pk.PKroot) != params.N {
		return false
	}
	if len(sig.R) != params.N ||
		len(sig.SIG_FORS) != params.K*(params.A+1)*params.N ||
		len(sig.SIG_HT) != (params.H+params.D*params.Len)*params.N {
		return false
	}

	digest := params.Tweak.Hmsg(sig.R, pk.PKseed, pk.PKroot, msg)
	md, idxTree, idxLeaf := splitDigest(params, digest)

	pkSeed := append([]byte{}, pk.PKseed...)

	adrs := address.New(0, idxTree)
	adrs.SetType(address.FORS_TREE)
	adrs.SetKeyPairAddress(idxLeaf)

	pkFors := fors.Fors_pkFromSig(params, sig.SIG_FORS, md, pkSeed, adrs)

	return hypertree.Ht_verify(params, pkFors, sig.SIG_HT, pkSeed, idxTree, idxLeaf, pk.PKroot)
}

// Spx_verifySK reports whether a secret key is well formed: the public root
// recomputed from SK.seed and PK.seed must match the stored PK.root.
func Spx_verifySK(params *parameters.Parameters, sk *SPHINCS_SK) bool {
	if params == nil || params.Tweak == nil || sk == nil {
		return false
	}
	if len(sk.SKseed) != params.N || len(sk.PKseed) != params.N || len(sk.PKroot) != params.N {
		return false
	}
	nc := cache.NewNodeCache(cache.DefaultCacheSize)
	root := hypertree.Ht_PKgen(params, sk.SKseed, sk.PKseed, nc)
	return subtle.ConstantTimeCompare(root, sk.PKroot) == 1
}

// splitDigest carves the message digest into its three regions: the FORS
// message bits, the tree index and the leaf index. Each region occupies
// ceil(bits/8) bytes and the decoded integers are reduced to their respective
// value spaces, identically in sign and verify.
func splitDigest(params *parameters.Parameters, digest []byte) (md []byte, idxTree uint64, idxLeaf uint32) {
	mdLen := params.MDLen()
	idxTreeLen := params.IdxTreeLen()
	idxLeafLen := params.IdxLeafLen()

	md = digest[:mdLen]
	tmpIdxTree := digest[mdLen : mdLen+idxTreeLen]
	tmpIdxLeaf := digest[mdLen+idxTreeLen : mdLen+idxTreeLen+idxLeafLen]

	idxTree = utils.BytesToUint64(tmpIdxTree) & (math.MaxUint64 >> (64 - uint(params.H-params.Hprime)))
	idxLeaf = uint32(utils.BytesToUint64(tmpIdxLeaf)) & (math.MaxUint32 >> (32 - uint(params.Hprime)))
	return md, idxTree, idxLeaf
}
