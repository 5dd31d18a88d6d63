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

// go/src/crypto/slhdsa/sphincs/serialize.go
package sphincs

import (
	"errors"
	"fmt"

	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/parameters"
)

// Wire format (bit-exact for interoperability):
//
//	SK  = SK.seed || SK.prf || PK.seed || PK.root            (4n bytes)
//	PK  = PK.seed || PK.root                                 (2n bytes)
//	SIG = R || SIG_FORS || SIG_HT                            ((1 + k(a+1) + h + d*len) * n bytes)

// SerializeSK flattens the secret key into its 4n-byte wire form.
func (sk *SPHINCS_SK) SerializeSK() ([]byte, error) {
	if sk == nil {
		return nil, errors.New("sphincs: private key is nil")
	}
	out := make([]byte, 0, len(sk.SKseed)+len(sk.SKprf)+len(sk.PKseed)+len(sk.PKroot))
	out = append(out, sk.SKseed...)
	out = append(out, sk.SKprf...)
	out = append(out, sk.PKseed...)
	out = append(out, sk.PKroot...)
	return out, nil
}

// DeserializeSK parses a 4n-byte secret key.
func DeserializeSK(params *parameters.Parameters, skBytes []byte) (*SPHINCS_SK, error) {
	if params == nil {
		return nil, errors.New("sphincs: parameters are not initialized")
	}
	n := params.N
	if len(skBytes) != params.SecretKeyBytes() {
		return nil, fmt.Errorf("sphincs: secret key must be %d bytes, got %d", params.SecretKeyBytes(), len(skBytes))
	}
	return &SPHINCS_SK{
		SKseed: append([]byte{}, skBytes[:n]...),
		SKprf:  append([]byte{}, skBytes[n:2*n]...),
		PKseed: append([]byte{}, skBytes[2*n:3*n]...),
		PKroot: append([]byte{}, skBytes[3*n:]...),
	}, nil
}

// SerializePK flattens the public key into its 2n-byte wire form.
func (pk *SPHINCS_PK) SerializePK() ([]byte, error) {
	if pk == nil {
		return nil, errors.New("sphincs: public key is nil")
	}
	out := make([]byte, 0, len(pk.PKseed)+len(pk.PKroot))
	out = append(out, pk.PKseed...)
	out = append(out, pk.PKroot...)
	return out, nil
}

// DeserializePK parses a 2n-byte public key.
func DeserializePK(params *parameters.Parameters, pkBytes []byte) (*SPHINCS_PK, error) {
	if params == nil {
		return nil, errors.New("sphincs: parameters are not initialized")
	}
	n := params.N
	if len(pkBytes) != params.PublicKeyBytes() {
		return nil, fmt.Errorf("sphincs: public key must be %d bytes, got %d", params.PublicKeyBytes(), len(pkBytes))
	}
	return &SPHINCS_PK{
		PKseed: append([]byte{}, pkBytes[:n]...),
		PKroot: append([]byte{}, pkBytes[n:]...),
	}, nil
}

// SerializeSignature flattens the signature into its wire form.
func (s *SPHINCS_SIG) SerializeSignature() ([]byte, error) {
	if s == nil {
		return nil, errors.New("sphincs: signature is nil")
	}
	out := make([]byte, 0, len(s.R)+len(s.SIG_FORS)+len(s.SIG_HT))
	out = append(out, s.R...)
	out = append(out, s.SIG_FORS...)
	out = append(out, s.SIG_HT...)
	return out, nil
}

// DeserializeSignature parses a signature; the input must have the exact
// parameter-determined length.
func DeserializeSignature(params *parameters.Parameters, sigBytes []byte) (*SPHINCS_SIG, error) {
	if params == nil {
		return nil, errors.New("sphincs: parameters are not initialized")
	}
	n := params.N
	if len(sigBytes) != params.SignatureBytes() {
		return nil, fmt.Errorf("sphincs: signature must be %d bytes, got %d", params.SignatureBytes(), len(sigBytes))
	}
	forsBytes := params.K * (params.A + 1) * n
	return &SPHINCS_SIG{
		R:        append([]byte{}, sigBytes[:n]...),
		SIG_FORS: append([]byte{}, sigBytes[n:n+forsBytes]...),
		SIG_HT:   append([]byte{}, sigBytes[n+forsBytes:]...),
	}, nil
}
