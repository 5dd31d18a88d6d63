package wots

import (
	"bytes"
	"testing"

	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/address"
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

// Operations mutate the chain and hash words of the address they receive, so
// every call gets a fresh copy positioned at the same key pair.
func wotsAdrs() *address.ADRS {
	adrs := address.New(0, 0)
	adrs.SetType(address.WOTS_HASH)
	adrs.SetKeyPairAddress(3)
	return adrs
}

func testSeeds(params *parameters.Parameters) (skSeed, pkSeed []byte) {
	skSeed = make([]byte, params.N)
	pkSeed = make([]byte, params.N)
	for i := range skSeed {
		skSeed[i] = byte(i)
		pkSeed[i] = byte(0xa0 + i)
	}
	return
}

func TestSignVerifyRoundTrip(t *testing.T) {
	params := testParams(t)
	skSeed, pkSeed := testSeeds(params)

	msg := make([]byte, params.N)
	for i := range msg {
		msg[i] = byte(0x40 + i)
	}

	pk := Wots_PKgen(params, skSeed, pkSeed, wotsAdrs())
	if len(pk) != params.N {
		t.Fatalf("public key length = %d, want %d", len(pk), params.N)
	}

	sig := Wots_sign(params, msg, skSeed, pkSeed, wotsAdrs())
	if len(sig) != params.Len*params.N {
		t.Fatalf("signature length = %d, want %d", len(sig), params.Len*params.N)
	}

	got := Wots_pkFromSig(params, sig, msg, pkSeed, wotsAdrs())
	if !bytes.Equal(got, pk) {
		t.Errorf("recovered pk %x, want %x", got, pk)
	}
}

func TestWrongDigestDoesNotRecoverKey(t *testing.T) {
	params := testParams(t)
	skSeed, pkSeed := testSeeds(params)

	msg := make([]byte, params.N)
	pk := Wots_PKgen(params, skSeed, pkSeed, wotsAdrs())
	sig := Wots_sign(params, msg, skSeed, pkSeed, wotsAdrs())

	for bit := 0; bit < 8*params.N; bit += 13 {
		wrong := make([]byte, len(msg))
		copy(wrong, msg)
		wrong[bit/8] ^= 1 << (bit & 7)
		if got := Wots_pkFromSig(params, sig, wrong, pkSeed, wotsAdrs()); bytes.Equal(got, pk) {
			t.Errorf("bit %d: flipped digest still recovered the public key", bit)
		}
	}
}

func TestTamperedSignatureDoesNotRecoverKey(t *testing.T) {
	params := testParams(t)
	skSeed, pkSeed := testSeeds(params)

	msg := make([]byte, params.N)
	pk := Wots_PKgen(params, skSeed, pkSeed, wotsAdrs())
	sig := Wots_sign(params, msg, skSeed, pkSeed, wotsAdrs())

	tampered := make([]byte, len(sig))
	copy(tampered, sig)
	tampered[0] ^= 0x01
	if got := Wots_pkFromSig(params, tampered, msg, pkSeed, wotsAdrs()); bytes.Equal(got, pk) {
		t.Error("tampered signature still recovered the public key")
	}
}

func TestKeyPairsAreIndependent(t *testing.T) {
	params := testParams(t)
	skSeed, pkSeed := testSeeds(params)

	a := wotsAdrs()
	b := wotsAdrs()
	b.SetKeyPairAddress(4)
	if bytes.Equal(Wots_PKgen(params, skSeed, pkSeed, a), Wots_PKgen(params, skSeed, pkSeed, b)) {
		t.Error("distinct key pair addresses produced the same public key")
	}
}

func TestChainComposition(t *testing.T) {
	params := testParams(t)
	_, pkSeed := testSeeds(params)

	x := make([]byte, params.N)
	full := Chain(params, x, 0, uint32(params.W-1), pkSeed, wotsAdrs())
	half := Chain(params, x, 0, 7, pkSeed, wotsAdrs())
	rest := Chain(params, half, 7, uint32(params.W-1)-7, pkSeed, wotsAdrs())
	if !bytes.Equal(full, rest) {
		t.Error("walking a chain in two stages must match a single walk")
	}
	if zero := Chain(params, x, 0, 0, pkSeed, wotsAdrs()); !bytes.Equal(zero, x) {
		t.Error("a zero-step walk must return its input")
	}
}
