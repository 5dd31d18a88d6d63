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

// go/src/accounts/keystore/keystore.go

// Package keystore persists SLH-DSA key pairs as encrypted JSON files on
// disk. The secret key is sealed with AES-256-GCM under an Argon2id-derived
// key; the public key and its Base58 address are stored in the clear.
package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters.
// OWASP have published guidance on Argon2 at
// https://cheatsheetseries.owasp.org/cheatsheets/Password_Storage_Cheat_Sheet.html
const (
	argonMemory      = 64 * 1024 // KiB
	argonIterations  = 2
	argonParallelism = 1
	argonKeyLen      = 32
	saltSize         = 16
)

// KeyFile is the on-disk JSON representation of one stored key pair.
type KeyFile struct {
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	PublicKey   string    `json:"public_key"`   // hex
	Salt        string    `json:"salt"`         // hex, Argon2id salt
	Nonce       string    `json:"nonce"`        // hex, AES-GCM nonce
	EncryptedSK string    `json:"encrypted_sk"` // hex, sealed secret key
	CreatedAt   time.Time `json:"created_at"`
}

// KeyStore manages encrypted key files under one directory.
type KeyStore struct {
	mu          sync.Mutex
	storagePath string
	keys        map[string]*KeyFile
}

// NewKeyStore opens (creating if needed) a keystore directory and loads the
// key files already present.
func NewKeyStore(storagePath string) (*KeyStore, error) {
	if storagePath == "" {
		return nil, errors.New("keystore path must not be empty")
	}
	if err := os.MkdirAll(storagePath, 0700); err != nil {
		return nil, fmt.Errorf("failed to create keystore directory: %w", err)
	}

	ks := &KeyStore{
		storagePath: storagePath,
		keys:        make(map[string]*KeyFile),
	}
	if err := ks.loadKeys(); err != nil {
		return nil, fmt.Errorf("failed to load existing keys: %w", err)
	}
	return ks, nil
}

// StoreKey seals the serialized secret key under the passphrase and writes
// the key file to disk.
func (ks *KeyStore) StoreKey(name string, skBytes, pkBytes []byte, passphrase string) (*KeyFile, error) {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	if name == "" {
		return nil, errors.New("key name must not be empty")
	}
	if _, exists := ks.keys[name]; exists {
		return nil, fmt.Errorf("key %q already exists", name)
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	sealed, nonce, err := seal(skBytes, passphrase, salt)
	if err != nil {
		return nil, err
	}

	kf := &KeyFile{
		Name:        name,
		Address:     GenerateAddress(pkBytes),
		PublicKey:   hex.EncodeToString(pkBytes),
		Salt:        hex.EncodeToString(salt),
		Nonce:       hex.EncodeToString(nonce),
		EncryptedSK: hex.EncodeToString(sealed),
		CreatedAt:   time.Now(),
	}
	if err := ks.saveKeyToDisk(kf); err != nil {
		return nil, err
	}
	ks.keys[name] = kf
	return kf, nil
}

// LoadKey unseals the secret key stored under name. A wrong passphrase
// surfaces as an error from the AEAD open.
func (ks *KeyStore) LoadKey(name, passphrase string) (skBytes, pkBytes []byte, err error) {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	kf, ok := ks.keys[name]
	if !ok {
		return nil, nil, fmt.Errorf("key %q not found", name)
	}

	salt, err := hex.DecodeString(kf.Salt)
	if err != nil {
		return nil, nil, err
	}
	nonce, err := hex.DecodeString(kf.Nonce)
	if err != nil {
		return nil, nil, err
	}
	sealed, err := hex.DecodeString(kf.EncryptedSK)
	if err != nil {
		return nil, nil, err
	}
	skBytes, err = open(sealed, nonce, passphrase, salt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to unseal key %q: %w", name, err)
	}
	pkBytes, err = hex.DecodeString(kf.PublicKey)
	if err != nil {
		return nil, nil, err
	}
	return skBytes, pkBytes, nil
}

// ListKeys returns the stored key files, secret material still sealed.
func (ks *KeyStore) ListKeys() []*KeyFile {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	out := make([]*KeyFile, 0, len(ks.keys))
	for _, kf := range ks.keys {
		out = append(out, kf)
	}
	return out
}

// DeleteKey removes a key file from disk and memory.
func (ks *KeyStore) DeleteKey(name string) error {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	if _, ok := ks.keys[name]; !ok {
		return fmt.Errorf("key %q not found", name)
	}
	if err := os.Remove(ks.keyFilePath(name)); err != nil {
		return err
	}
	delete(ks.keys, name)
	return nil
}

func (ks *KeyStore) keyFilePath(name string) string {
	return filepath.Join(ks.storagePath, name+".json")
}

func (ks *KeyStore) saveKeyToDisk(kf *KeyFile) error {
	data, err := json.MarshalIndent(kf, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(ks.keyFilePath(kf.Name), data, 0600)
}

func (ks *KeyStore) loadKeys() error {
	entries, err := os.ReadDir(ks.storagePath)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(ks.storagePath, e.Name()))
		if err != nil {
			return err
		}
		kf := new(KeyFile)
		if err := json.Unmarshal(data, kf); err != nil {
			return fmt.Errorf("corrupt key file %s: %w", e.Name(), err)
		}
		ks.keys[kf.Name] = kf
	}
	return nil
}

// deriveKey stretches the passphrase with Argon2id.
func deriveKey(passphrase string, salt []byte) []byte {
	return argon2.IDKey([]byte(passphrase), salt, argonIterations, argonMemory, argonParallelism, argonKeyLen)
}

// seal encrypts plaintext with AES-256-GCM under the derived key.
func seal(plaintext []byte, passphrase string, salt []byte) (sealed, nonce []byte, err error) {
	block, err := aes.NewCipher(deriveKey(passphrase, salt))
	if err != nil {
		return nil, nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, err
	}
	nonce = make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}
	return gcm.Seal(nil, nonce, plaintext, nil), nonce, nil
}

// open decrypts and authenticates sealed bytes.
func open(sealed, nonce []byte, passphrase string, salt []byte) ([]byte, error) {
	block, err := aes.NewCipher(deriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return gcm.Open(nil, nonce, sealed, nil)
}
