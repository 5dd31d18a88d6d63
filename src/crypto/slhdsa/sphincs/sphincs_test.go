package sphincs

import (
	"bytes"
	"testing"

	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/parameters"
)

func testParams(t *testing.T) *parameters.Parameters {
	t.Helper()
	params, err := parameters.MakeSLHDSAParams(16, 16, 4, 2, 2, 2, "SHAKE256", false)
	if err != nil {
		t.Fatal(err)
	}
	return params
}

func testKeyPair(t *testing.T, params *parameters.Parameters) (*SPHINCS_SK, *SPHINCS_PK) {
	t.Helper()
	sk, pk, err := Spx_keygen(params)
	if err != nil {
		t.Fatal(err)
	}
	return sk, pk
}

func TestSignVerifyRoundTrip(t *testing.T) {
	params := testParams(t)
	sk, pk := testKeyPair(t, params)

	messages := [][]byte{
		nil,
		{},
		[]byte("a"),
		[]byte("attack at dawn"),
		bytes.Repeat([]byte{0xff}, 1000),
	}
	for _, msg := range messages {
		sig, err := Spx_sign(params, msg, sk)
		if err != nil {
			t.Fatalf("sign(%q): %v", msg, err)
		}
		if !Spx_verify(params, msg, sig, pk) {
			t.Errorf("valid signature on %q rejected", msg)
		}
		if Spx_verify(params, append(append([]byte{}, msg...), 'x'), sig, pk) {
			t.Errorf("signature on %q accepted for an extended message", msg)
		}
	}
}

func TestEveryBitFlipRejected(t *testing.T) {
	params := testParams(t)
	sk, pk := testKeyPair(t, params)

	msg := []byte("bit flip sweep")
	sig, err := Spx_sign(params, msg, sk)
	if err != nil {
		t.Fatal(err)
	}
	wire, err := sig.SerializeSignature()
	if err != nil {
		t.Fatal(err)
	}

	// Sampling every 101st bit keeps the sweep fast while still crossing R,
	// the FORS blocks and every hyper-tree layer.
	for bit := 0; bit < 8*len(wire); bit += 101 {
		wire[bit/8] ^= 1 << (bit & 7)
		mutated, err := DeserializeSignature(params, wire)
		if err != nil {
			t.Fatalf("bit %d: %v", bit, err)
		}
		if Spx_verify(params, msg, mutated, pk) {
			t.Errorf("bit %d: corrupted signature accepted", bit)
		}
		wire[bit/8] ^= 1 << (bit & 7)
	}
}

func TestMalformedSignatureRejected(t *testing.T) {
	params := testParams(t)
	sk, pk := testKeyPair(t, params)

	msg := []byte("length checks")
	sig, err := Spx_sign(params, msg, sk)
	if err != nil {
		t.Fatal(err)
	}

	if Spx_verify(params, msg, nil, pk) {
		t.Error("nil signature accepted")
	}
	if Spx_verify(params, msg, sig, nil) {
		t.Error("nil public key accepted")
	}
	if Spx_verify(params, msg, &SPHINCS_SIG{R: sig.R[:len(sig.R)-1], SIG_FORS: sig.SIG_FORS, SIG_HT: sig.SIG_HT}, pk) {
		t.Error("truncated randomizer accepted")
	}
	if Spx_verify(params, msg, &SPHINCS_SIG{R: sig.R, SIG_FORS: sig.SIG_FORS[:0], SIG_HT: sig.SIG_HT}, pk) {
		t.Error("empty FORS component accepted")
	}
	if Spx_verify(params, msg, &SPHINCS_SIG{R: sig.R, SIG_FORS: sig.SIG_FORS, SIG_HT: append(append([]byte{}, sig.SIG_HT...), 0)}, pk) {
		t.Error("padded hyper-tree component accepted")
	}
}

func TestDeterministicSigning(t *testing.T) {
	params := testParams(t)
	sk, _ := testKeyPair(t, params)

	msg := []byte("same message, same bytes")
	a, err := Spx_sign(params, msg, sk)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Spx_sign(params, msg, sk)
	if err != nil {
		t.Fatal(err)
	}
	wa, _ := a.SerializeSignature()
	wb, _ := b.SerializeSignature()
	if !bytes.Equal(wa, wb) {
		t.Error("deterministic mode produced differing signatures for one message")
	}
}

func TestRandomizedSigning(t *testing.T) {
	params, err := parameters.MakeSLHDSAParams(16, 16, 4, 2, 2, 2, "SHAKE256", true)
	if err != nil {
		t.Fatal(err)
	}
	sk, pk := testKeyPair(t, params)

	msg := []byte("same message, fresh randomizer")
	a, err := Spx_sign(params, msg, sk)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Spx_sign(params, msg, sk)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(a.R, b.R) {
		t.Error("randomized mode reused a randomizer")
	}
	if !Spx_verify(params, msg, a, pk) || !Spx_verify(params, msg, b, pk) {
		t.Error("randomized signature rejected")
	}
}

func TestSignersAreIndependent(t *testing.T) {
	params := testParams(t)
	sk1, pk1 := testKeyPair(t, params)
	_, pk2 := testKeyPair(t, params)

	msg := []byte("cross-key check")
	sig, err := Spx_sign(params, msg, sk1)
	if err != nil {
		t.Fatal(err)
	}
	if !Spx_verify(params, msg, sig, pk1) {
		t.Fatal("signature rejected under its own key")
	}
	if Spx_verify(params, msg, sig, pk2) {
		t.Error("signature accepted under a foreign key")
	}
}

func TestKeygenFromSeedIsDeterministic(t *testing.T) {
	params := testParams(t)

	skSeed := bytes.Repeat([]byte{0x01}, params.N)
	skPrf := bytes.Repeat([]byte{0x02}, params.N)
	pkSeed := bytes.Repeat([]byte{0x03}, params.N)

	sk1, pk1, err := Spx_keygenFromSeed(params, skSeed, skPrf, pkSeed)
	if err != nil {
		t.Fatal(err)
	}
	sk2, pk2, err := Spx_keygenFromSeed(params, skSeed, skPrf, pkSeed)
	if err != nil {
		t.Fatal(err)
	}
	w1, _ := sk1.SerializeSK()
	w2, _ := sk2.SerializeSK()
	if !bytes.Equal(w1, w2) {
		t.Error("seeded key generation is not deterministic")
	}
	if !bytes.Equal(pk1.PKroot, pk2.PKroot) {
		t.Error("seeded key generation produced differing roots")
	}

	if _, _, err := Spx_keygenFromSeed(params, skSeed[:params.N-1], skPrf, pkSeed); err == nil {
		t.Error("short seed accepted")
	}
}

func TestVerifySK(t *testing.T) {
	params := testParams(t)
	sk, _ := testKeyPair(t, params)

	if !Spx_verifySK(params, sk) {
		t.Fatal("freshly generated key reported malformed")
	}

	bad := &SPHINCS_SK{
		SKseed: append([]byte{}, sk.SKseed...),
		SKprf:  append([]byte{}, sk.SKprf...),
		PKseed: append([]byte{}, sk.PKseed...),
		PKroot: append([]byte{}, sk.PKroot...),
	}
	bad.PKroot[0] ^= 0x01
	if Spx_verifySK(params, bad) {
		t.Error("key with an altered root reported well formed")
	}
	if Spx_verifySK(params, nil) {
		t.Error("nil key reported well formed")
	}
}

func TestSerializationRoundTrips(t *testing.T) {
	params := testParams(t)
	sk, pk := testKeyPair(t, params)

	skBytes, err := sk.SerializeSK()
	if err != nil {
		t.Fatal(err)
	}
	if len(skBytes) != params.SecretKeyBytes() {
		t.Errorf("secret key wire length = %d, want %d", len(skBytes), params.SecretKeyBytes())
	}
	sk2, err := DeserializeSK(params, skBytes)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(sk2.SKseed, sk.SKseed) || !bytes.Equal(sk2.PKroot, sk.PKroot) {
		t.Error("secret key round trip lost data")
	}

	pkBytes, err := pk.SerializePK()
	if err != nil {
		t.Fatal(err)
	}
	pk2, err := DeserializePK(params, pkBytes)
	if err != nil {
		t.Fatal(err)
	}

	msg := []byte("serialized keys still work")
	sig, err := Spx_sign(params, msg, sk2)
	if err != nil {
		t.Fatal(err)
	}
	sigBytes, err := sig.SerializeSignature()
	if err != nil {
		t.Fatal(err)
	}
	if len(sigBytes) != params.SignatureBytes() {
		t.Errorf("signature wire length = %d, want %d", len(sigBytes), params.SignatureBytes())
	}
	sig2, err := DeserializeSignature(params, sigBytes)
	if err != nil {
		t.Fatal(err)
	}
	if !Spx_verify(params, msg, sig2, pk2) {
		t.Error("signature rejected after key and signature round trips")
	}

	if _, err := DeserializeSK(params, skBytes[:len(skBytes)-1]); err == nil {
		t.Error("short secret key accepted")
	}
	if _, err := DeserializePK(params, append(pkBytes, 0)); err == nil {
		t.Error("long public key accepted")
	}
	if _, err := DeserializeSignature(params, sigBytes[1:]); err == nil {
		t.Error("short signature accepted")
	}
}

// End-to-end check at a standard parameter set. Key generation at 128f walks a
// full top-layer tree, so this stays out of the short test cycle.
func TestSLHDSA128fEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping full 128f key generation in short mode")
	}
	params := parameters.MakeSLHDSASHAKE128f(false)
	sk, pk, err := Spx_keygen(params)
	if err != nil {
		t.Fatal(err)
	}
	msg := []byte("standard parameter set round trip")
	sig, err := Spx_sign(params, msg, sk)
	if err != nil {
		t.Fatal(err)
	}
	wire, err := sig.SerializeSignature()
	if err != nil {
		t.Fatal(err)
	}
	if len(wire) != 17088 {
		t.Errorf("signature length = %d, want 17088", len(wire))
	}
	if !Spx_verify(params, msg, sig, pk) {
		t.Error("valid signature rejected")
	}
	wire[100] ^= 0x40
	mutated, err := DeserializeSignature(params, wire)
	if err != nil {
		t.Fatal(err)
	}
	if Spx_verify(params, msg, mutated, pk) {
		t.Error("corrupted signature accepted")
	}
}
