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

package key

import (
	"errors"
	"fmt"

	params "github.com/sphinx-core/slhdsa/src/core/sphincs/config"
	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/sphincs"
)

// KeyManager is responsible for key generation, validation and serialization
// under one fixed SLH-DSA parameter set.
type KeyManager struct {
	Params *params.SPHINCSParameters
}

// NewKeyManager initializes a new KeyManager with the default parameter set.
func NewKeyManager() (*KeyManager, error) {
	spxParams, err := params.NewSPHINCSParameters()
	if err != nil {
		return nil, err
	}
	return &KeyManager{Params: spxParams}, nil
}

// NewKeyManagerForLevel initializes a KeyManager for a named parameter set.
func NewKeyManagerForLevel(level params.SecurityLevel, randomize bool) (*KeyManager, error) {
	spxParams, err := params.NewSPHINCSParametersForLevel(level, randomize)
	if err != nil {
		return nil, err
	}
	return &KeyManager{Params: spxParams}, nil
}

// NewKeyManagerWithParams initializes a KeyManager around an existing
// parameter set.
func NewKeyManagerWithParams(spxParams *params.SPHINCSParameters) (*KeyManager, error) {
	if spxParams == nil || spxParams.Params == nil {
		return nil, errors.New("missing SLH-DSA parameters")
	}
	return &KeyManager{Params: spxParams}, nil
}

// GetSPHINCSParameters returns the manager's parameter set.
func (km *KeyManager) GetSPHINCSParameters() *params.SPHINCSParameters {
	return km.Params
}

// GenerateKey generates a new SLH-DSA private and public key pair.
func (km *KeyManager) GenerateKey() (*sphincs.SPHINCS_SK, *sphincs.SPHINCS_PK, error) {
	if km.Params == nil || km.Params.Params == nil {
		return nil, nil, errors.New("missing SLH-DSA parameters in KeyManager")
	}

	sk, pk, err := sphincs.Spx_keygen(km.Params.Params)
	if err != nil {
		return nil, nil, fmt.Errorf("key generation failed: %w", err)
	}
	if len(sk.SKseed) == 0 || len(pk.PKseed) == 0 {
		return nil, nil, errors.New("key generation failed: empty key fields")
	}
	return sk, pk, nil
}

// GenerateKeyFromSeed derives a key pair deterministically from n-byte seeds,
// for reproducible keys and test vectors.
func (km *KeyManager) GenerateKeyFromSeed(skSeed, skPrf, pkSeed []byte) (*sphincs.SPHINCS_SK, *sphincs.SPHINCS_PK, error) {
	if km.Params == nil || km.Params.Params == nil {
		return nil, nil, errors.New("missing SLH-DSA parameters in KeyManager")
	}
	return sphincs.Spx_keygenFromSeed(km.Params.Params, skSeed, skPrf, pkSeed)
}

// ValidateSecretKey reports whether the secret key is well formed: the public
// root recomputed from its seeds must match the stored one.
func (km *KeyManager) ValidateSecretKey(sk *sphincs.SPHINCS_SK) bool {
	if km.Params == nil || km.Params.Params == nil {
		return false
	}
	return sphincs.Spx_verifySK(km.Params.Params, sk)
}

// SerializeKeyPair serializes a private and public key pair to byte slices.
func (km *KeyManager) SerializeKeyPair(sk *sphincs.SPHINCS_SK, pk *sphincs.SPHINCS_PK) ([]byte, []byte, error) {
	if sk == nil || pk == nil {
		return nil, nil, errors.New("private or public key is nil")
	}

	skBytes, err := sk.SerializeSK()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to serialize private key: %w", err)
	}
	pkBytes, err := pk.SerializePK()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to serialize public key: %w", err)
	}
	return skBytes, pkBytes, nil
}

// DeserializeKeyPair reconstructs a private and public key pair from bytes.
func (km *KeyManager) DeserializeKeyPair(skBytes, pkBytes []byte) (*sphincs.SPHINCS_SK, *sphincs.SPHINCS_PK, error) {
	if km.Params == nil || km.Params.Params == nil {
		return nil, nil, errors.New("missing parameters in KeyManager")
	}

	sk, err := sphincs.DeserializeSK(km.Params.Params, skBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to deserialize private key: %w", err)
	}
	pk, err := sphincs.DeserializePK(km.Params.Params, pkBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to deserialize public key: %w", err)
	}
	return sk, pk, nil
}

// DeserializePublicKey deserializes only the public key.
func (km *KeyManager) DeserializePublicKey(pkBytes []byte) (*sphincs.SPHINCS_PK, error) {
	if km.Params == nil || km.Params.Params == nil {
		return nil, errors.New("missing parameters in KeyManager")
	}
	pk, err := sphincs.DeserializePK(km.Params.Params, pkBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize public key: %w", err)
	}
	return pk, nil
}
