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

// go/src/crypto/slhdsa/wots/wots.go

// Package wots implements the WOTS+ one-time signature primitive of SLH-DSA
// (FIPS 205 section 5). Each key pair signs exactly one n-byte digest; the
// surrounding XMSS layer guarantees no key pair is selected twice.
package wots

import (
	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/address"
	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/parameters"
	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/utils"
)

// Chain walks a hash chain s steps starting from position i (Algorithm 5).
// Chains are one-directional: knowing an intermediate value only allows
// computing values further along the chain.
func Chain(params *parameters.Parameters, x []byte, i, s uint32, pkSeed []byte, adrs *address.ADRS) []byte {
	tmp := x
	for j := i; j < i+s; j++ {
		adrs.SetHashAddress(j)
		tmp = params.Tweak.F(pkSeed, adrs, tmp)
	}
	return tmp
}

// Wots_PKgen derives the WOTS+ public key for the key pair selected by adrs
// (Algorithm 6): each of the len secret chain starts is walked to its end and
// the chain ends are compressed under a dedicated WOTS_PK address.
func Wots_PKgen(params *parameters.Parameters, skSeed, pkSeed []byte, adrs *address.ADRS) []byte {
	skAdrs := adrs.Copy()
	skAdrs.SetType(address.WOTS_PRF)
	skAdrs.SetKeyPairAddress(adrs.GetKeyPairAddress())

	tmp := make([]byte, 0, params.Len*params.N)
	for i := 0; i < params.Len; i++ {
		skAdrs.SetChainAddress(uint32(i))
		sk := params.Tweak.PRF(pkSeed, skSeed, skAdrs)
		adrs.SetChainAddress(uint32(i))
		tmp = append(tmp, Chain(params, sk, 0, uint32(params.W-1), pkSeed, adrs)...)
	}

	pkAdrs := adrs.Copy()
	pkAdrs.SetType(address.WOTS_PK)
	pkAdrs.SetKeyPairAddress(adrs.GetKeyPairAddress())
	return params.Tweak.Tl(pkSeed, pkAdrs, tmp)
}

// Wots_sign signs an n-byte digest (Algorithm 7). For each base-w digit the
// corresponding chain is walked from its secret start up to the digit value.
func Wots_sign(params *parameters.Parameters, msg, skSeed, pkSeed []byte, adrs *address.ADRS) []byte {
	msgw := checksummedDigits(params, msg)

	skAdrs := adrs.Copy()
	skAdrs.SetType(address.WOTS_PRF)
	skAdrs.SetKeyPairAddress(adrs.GetKeyPairAddress())

	sig := make([]byte, 0, params.Len*params.N)
	for i := 0; i < params.Len; i++ {
		skAdrs.SetChainAddress(uint32(i))
		sk := params.Tweak.PRF(pkSeed, skSeed, skAdrs)
		adrs.SetChainAddress(uint32(i))
		sig = append(sig, Chain(params, sk, 0, msgw[i], pkSeed, adrs)...)
	}
	return sig
}

// Wots_pkFromSig recomputes the candidate public key from a signature
// (Algorithm 8): each chain is continued from the signature value to the chain
// end. The result equals the real public key iff the signature is valid for
// the digest; no other failure mode is surfaced here.
func Wots_pkFromSig(params *parameters.Parameters, sig, msg, pkSeed []byte, adrs *address.ADRS) []byte {
	msgw := checksummedDigits(params, msg)

	tmp := make([]byte, 0, params.Len*params.N)
	for i := 0; i < params.Len; i++ {
		adrs.SetChainAddress(uint32(i))
		sigI := sig[i*params.N : (i+1)*params.N]
		tmp = append(tmp, Chain(params, sigI, msgw[i], uint32(params.W-1)-msgw[i], pkSeed, adrs)...)
	}

	pkAdrs := adrs.Copy()
	pkAdrs.SetType(address.WOTS_PK)
	pkAdrs.SetKeyPairAddress(adrs.GetKeyPairAddress())
	return params.Tweak.Tl(pkSeed, pkAdrs, tmp)
}

// checksummedDigits converts the digest into len1 base-w digits and appends
// len2 checksum digits. The checksum is what prevents forgeries by chain
// walking: increasing any message digit strictly decreases the checksum, and
// chains cannot be walked backwards.
func checksummedDigits(params *parameters.Parameters, msg []byte) []uint32 {
	msgw := utils.Base2b(msg, params.LogW, params.Len1)
	csum := uint32(0)
	for i := 0; i < params.Len1; i++ {
		csum += uint32(params.W-1) - msgw[i]
	}
	// Left-align the checksum bits within the len2 digit block.
	csum <<= (8 - ((params.Len2 * params.LogW) & 7)) & 7
	buf := utils.ToByte(uint64(csum), utils.CeilDiv(params.Len2*params.LogW, 8))
	return append(msgw, utils.Base2b(buf, params.LogW, params.Len2)...)
}
