package sign

import (
	"errors"

	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/sphincs"
)

// SerializeSignature serializes the signature into its wire form.
func (sm *SphincsManager) SerializeSignature(sig *sphincs.SPHINCS_SIG) ([]byte, error) {
	return sig.SerializeSignature()
}

// DeserializeSignature parses a byte slice into a signature using the
// manager's parameters.
func (sm *SphincsManager) DeserializeSignature(sigBytes []byte) (*sphincs.SPHINCS_SIG, error) {
	if sm.parameters == nil || sm.parameters.Params == nil {
		return nil, errors.New("SPHINCSParameters are not initialized")
	}
	return sphincs.DeserializeSignature(sm.parameters.Params, sigBytes)
}
