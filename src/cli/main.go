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

// go/src/cli/main.go
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/sphinx-core/slhdsa/src/accounts/keystore"
	params "github.com/sphinx-core/slhdsa/src/core/sphincs/config"
	key "github.com/sphinx-core/slhdsa/src/core/sphincs/key/backend"
	sign "github.com/sphinx-core/slhdsa/src/core/sphincs/sign/backend"
	logger "github.com/sphinx-core/slhdsa/src/log"
)

func main() {
	mode := flag.String("mode", "", "Operation to perform: keygen, sign, verify or list")
	level := flag.String("level", string(params.SHAKE192f), "SLH-DSA parameter set")
	randomize := flag.Bool("randomize", false, "Use randomized signing")
	keyName := flag.String("key", "default", "Name of the key in the keystore")
	storePath := flag.String("keystore", defaultKeystorePath(), "Keystore directory")
	passphrase := flag.String("passphrase", "", "Keystore passphrase")
	message := flag.String("message", "", "Message to sign or verify")
	sigHex := flag.String("signature", "", "Hex-encoded signature to verify")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	if *verbose {
		logger.SetLevel(logger.DEBUG)
	}

	km, err := key.NewKeyManagerForLevel(params.SecurityLevel(*level), *randomize)
	if err != nil {
		logger.Fatalf("Invalid parameter set: %v", err)
	}
	ks, err := keystore.NewKeyStore(*storePath)
	if err != nil {
		logger.Fatalf("Failed to open keystore: %v", err)
	}

	switch *mode {
	case "keygen":
		runKeygen(km, ks, *keyName, *passphrase)
	case "sign":
		runSign(km, ks, *keyName, *passphrase, *message)
	case "verify":
		runVerify(km, ks, *keyName, *message, *sigHex)
	case "list":
		runList(ks)
	default:
		logger.Fatalf("Invalid mode %q. Must be keygen, sign, verify or list", *mode)
	}
}

func runKeygen(km *key.KeyManager, ks *keystore.KeyStore, name, passphrase string) {
	sk, pk, err := km.GenerateKey()
	if err != nil {
		logger.Fatalf("Key generation failed: %v", err)
	}
	skBytes, pkBytes, err := km.SerializeKeyPair(sk, pk)
	if err != nil {
		logger.Fatalf("Failed to serialize key pair: %v", err)
	}
	kf, err := ks.StoreKey(name, skBytes, pkBytes, passphrase)
	if err != nil {
		logger.Fatalf("Failed to store key: %v", err)
	}
	logger.Infof("Generated key %q with address %s", kf.Name, kf.Address)
	fmt.Printf("public key: %s\n", hex.EncodeToString(pkBytes))
}

func runSign(km *key.KeyManager, ks *keystore.KeyStore, name, passphrase, message string) {
	if message == "" {
		logger.Fatalf("A message is required for signing")
	}
	skBytes, pkBytes, err := ks.LoadKey(name, passphrase)
	if err != nil {
		logger.Fatalf("Failed to load key: %v", err)
	}
	sk, _, err := km.DeserializeKeyPair(skBytes, pkBytes)
	if err != nil {
		logger.Fatalf("Failed to deserialize key pair: %v", err)
	}

	sm, err := sign.NewSphincsManager(nil, km, km.GetSPHINCSParameters(), nil)
	if err != nil {
		logger.Fatalf("Failed to initialize signing backend: %v", err)
	}
	sig, err := sm.SignMessage([]byte(message), sk)
	if err != nil {
		logger.Fatalf("Signing failed: %v", err)
	}
	sigBytes, err := sm.SerializeSignature(sig)
	if err != nil {
		logger.Fatalf("Failed to serialize signature: %v", err)
	}
	fmt.Printf("%s\n", hex.EncodeToString(sigBytes))
}

func runVerify(km *key.KeyManager, ks *keystore.KeyStore, name, message, sigHex string) {
	if message == "" || sigHex == "" {
		logger.Fatalf("A message and a signature are required for verification")
	}
	sigBytes, err := hex.DecodeString(sigHex)
	if err != nil {
		logger.Fatalf("Invalid signature encoding: %v", err)
	}

	var pkBytes []byte
	for _, kf := range ks.ListKeys() {
		if kf.Name == name {
			pkBytes, err = hex.DecodeString(kf.PublicKey)
			if err != nil {
				logger.Fatalf("Corrupt public key for %q: %v", name, err)
			}
		}
	}
	if pkBytes == nil {
		logger.Fatalf("Key %q not found in keystore", name)
	}
	pk, err := km.DeserializePublicKey(pkBytes)
	if err != nil {
		logger.Fatalf("Failed to deserialize public key: %v", err)
	}

	sm, err := sign.NewSphincsManager(nil, km, km.GetSPHINCSParameters(), nil)
	if err != nil {
		logger.Fatalf("Failed to initialize signing backend: %v", err)
	}
	sig, err := sm.DeserializeSignature(sigBytes)
	if err != nil {
		fmt.Println("invalid")
		os.Exit(1)
	}
	if sm.VerifySignature([]byte(message), sig, pk) {
		fmt.Println("valid")
		return
	}
	fmt.Println("invalid")
	os.Exit(1)
}

func runList(ks *keystore.KeyStore) {
	for _, kf := range ks.ListKeys() {
		fmt.Printf("%s\t%s\t%s\n", kf.Name, kf.Address, kf.CreatedAt.Format("2006-01-02 15:04:05"))
	}
}

func defaultKeystorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".slhdsa/keystore"
	}
	return home + "/.slhdsa/keystore"
}
