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

package sign

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/minio/highwayhash"
	"github.com/syndtr/goleveldb/leveldb"
	"go.uber.org/zap"

	params "github.com/sphinx-core/slhdsa/src/core/sphincs/config"
	key "github.com/sphinx-core/slhdsa/src/core/sphincs/key/backend"
	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/sphincs"
)

// sigKeyPrefix namespaces archived signatures in LevelDB.
const sigKeyPrefix = "sig:"

// hashKeyEntry is the LevelDB entry holding the archive fingerprint key, so
// archived signatures stay reachable across process restarts.
const hashKeyEntry = "meta:hashkey"

// SphincsManager signs and verifies messages under one parameter set. When a
// LevelDB handle is supplied, produced signatures are archived under a keyed
// fingerprint of (message, public key) so they can be looked up later.
type SphincsManager struct {
	db         *leveldb.DB
	keyManager *key.KeyManager
	parameters *params.SPHINCSParameters
	metrics    *Metrics
	log        *zap.Logger
	hashKey    []byte // HighwayHash key for archive fingerprints
}

// NewSphincsManager creates a new SphincsManager. The LevelDB handle and
// logger may be nil; a nil db disables the signature archive.
func NewSphincsManager(db *leveldb.DB, keyManager *key.KeyManager, parameters *params.SPHINCSParameters, logger *zap.Logger) (*SphincsManager, error) {
	if keyManager == nil || parameters == nil || parameters.Params == nil {
		return nil, errors.New("KeyManager or SPHINCSParameters are not properly initialized")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	hashKey, err := loadOrCreateHashKey(db)
	if err != nil {
		return nil, err
	}
	return &SphincsManager{
		db:         db,
		keyManager: keyManager,
		parameters: parameters,
		metrics:    NewMetrics(),
		log:        logger,
		hashKey:    hashKey,
	}, nil
}

// loadOrCreateHashKey returns the archive fingerprint key stored in the
// database, generating and persisting one on first use. With no database the
// archive is disabled and a throwaway key suffices.
func loadOrCreateHashKey(db *leveldb.DB) ([]byte, error) {
	if db != nil {
		if stored, err := db.Get([]byte(hashKeyEntry), nil); err == nil {
			if len(stored) != 32 {
				return nil, errors.New("corrupt archive hash key")
			}
			return stored, nil
		} else if err != leveldb.ErrNotFound {
			return nil, err
		}
	}
	hashKey := make([]byte, 32)
	if _, err := rand.Read(hashKey); err != nil {
		return nil, err
	}
	if db != nil {
		if err := db.Put([]byte(hashKeyEntry), hashKey, nil); err != nil {
			return nil, err
		}
	}
	return hashKey, nil
}

// Metrics returns the manager's Prometheus collectors for registration.
func (sm *SphincsManager) Metrics() *Metrics {
	return sm.metrics
}

// SignMessage signs a given message using the secret key and archives the
// serialized signature when a database is configured.
func (sm *SphincsManager) SignMessage(message []byte, sk *sphincs.SPHINCS_SK) (*sphincs.SPHINCS_SIG, error) {
	if sm.parameters == nil || sm.parameters.Params == nil {
		return nil, errors.New("SPHINCSParameters are not initialized")
	}

	start := time.Now()
	signature, err := sphincs.Spx_sign(sm.parameters.Params, message, sk)
	sm.metrics.SignLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		sm.metrics.ErrorCount.WithLabelValues("sign").Inc()
		return nil, err
	}
	sm.metrics.SignCount.Inc()

	if sm.db != nil {
		sigBytes, err := signature.SerializeSignature()
		if err != nil {
			return nil, err
		}
		pkBytes := append(append([]byte{}, sk.PKseed...), sk.PKroot...)
		dbKey := sm.archiveKey(message, pkBytes)
		if err := sm.db.Put(dbKey, sigBytes, nil); err != nil {
			sm.metrics.ErrorCount.WithLabelValues("archive").Inc()
			return nil, err
		}
		sm.log.Debug("archived signature",
			zap.String("key", string(dbKey)),
			zap.Int("bytes", len(sigBytes)))
	}
	return signature, nil
}

// VerifySignature verifies if a signature is valid for a given message and
// public key. Malformed input yields false, never an error.
func (sm *SphincsManager) VerifySignature(message []byte, sig *sphincs.SPHINCS_SIG, pk *sphincs.SPHINCS_PK) bool {
	if sm.parameters == nil || sm.parameters.Params == nil {
		return false
	}

	start := time.Now()
	valid := sphincs.Spx_verify(sm.parameters.Params, message, sig, pk)
	sm.metrics.VerifyLatency.Observe(time.Since(start).Seconds())
	sm.metrics.VerifyCount.Inc()
	if !valid {
		sm.metrics.VerifyFailures.Inc()
		sm.log.Debug("signature rejected", zap.Int("message_bytes", len(message)))
	}
	return valid
}

// ArchivedSignature loads a previously archived signature for (message, pk),
// if one exists.
func (sm *SphincsManager) ArchivedSignature(message []byte, pk *sphincs.SPHINCS_PK) (*sphincs.SPHINCS_SIG, error) {
	if sm.db == nil {
		return nil, errors.New("signature archive is not configured")
	}
	pkBytes, err := pk.SerializePK()
	if err != nil {
		return nil, err
	}
	sigBytes, err := sm.db.Get(sm.archiveKey(message, pkBytes), nil)
	if err != nil {
		return nil, err
	}
	return sphincs.DeserializeSignature(sm.parameters.Params, sigBytes)
}

// archiveKey derives the LevelDB key for a (message, public key) pair using
// the manager's keyed HighwayHash fingerprint.
func (sm *SphincsManager) archiveKey(message, pkBytes []byte) []byte {
	h, err := highwayhash.New(sm.hashKey)
	if err != nil {
		// The key is always 32 bytes, set in the constructor.
		panic(err)
	}
	h.Write(message)
	h.Write(pkBytes)
	return append([]byte(sigKeyPrefix), []byte(hex.EncodeToString(h.Sum(nil)))...)
}
