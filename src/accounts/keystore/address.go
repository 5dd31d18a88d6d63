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

// go/src/accounts/keystore/address.go
package keystore

import (
	"fmt"

	"github.com/btcsuite/btcutil/base58"
	"golang.org/x/crypto/sha3"
)

// Prefix byte for address generation
const prefixByte = 0x78 // ASCII 'x'

// GenerateAddress derives a short human-readable fingerprint for a serialized
// public key: double SHAKE256, truncated to 20 bytes, prefixed and Base58
// encoded.
func GenerateAddress(pubKey []byte) string {
	first := make([]byte, 32)
	sha3.ShakeSum256(first, pubKey)
	second := make([]byte, 32)
	sha3.ShakeSum256(second, first)

	addressBytes := append([]byte{prefixByte}, second[:20]...)
	return base58.Encode(addressBytes)
}

// DecodeAddress decodes a Base58 encoded address and checks the prefix byte.
func DecodeAddress(encodedAddress string) ([]byte, error) {
	addressBytes := base58.Decode(encodedAddress)
	if len(addressBytes) == 0 {
		return nil, fmt.Errorf("invalid address: %s", encodedAddress)
	}
	if addressBytes[0] != prefixByte {
		return nil, fmt.Errorf("invalid address prefix")
	}
	return addressBytes[1:], nil
}
