package fors

import (
	"bytes"
	"testing"

	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/address"
	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/cache"
	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/parameters"
)

func testParams(t *testing.T) *parameters.Parameters {
	t.Helper()
	params, err := parameters.MakeSLHDSAParams(16, 16, 4, 2, 4, 3, "SHAKE256", false)
	if err != nil {
		t.Fatal(err)
	}
	return params
}

func forsAdrs() *address.ADRS {
	adrs := address.New(0, 5)
	adrs.SetType(address.FORS_TREE)
	adrs.SetKeyPairAddress(2)
	return adrs
}

func testSeeds(params *parameters.Parameters) (skSeed, pkSeed []byte) {
	skSeed = make([]byte, params.N)
	pkSeed = make([]byte, params.N)
	for i := range skSeed {
		skSeed[i] = byte(0x10 + i)
		pkSeed[i] = byte(0xc0 + i)
	}
	return
}

// expectedPK computes the FORS public key directly from the k tree roots,
// independent of any signature.
func expectedPK(params *parameters.Parameters, skSeed, pkSeed []byte) []byte {
	adrs := forsAdrs()
	nc := cache.NewNodeCache(cache.DefaultCacheSize)
	roots := make([]byte, 0, params.K*params.N)
	for i := 0; i < params.K; i++ {
		roots = append(roots, Fors_node(params, skSeed, uint32(i), uint32(params.A), pkSeed, adrs, nc)...)
	}
	pkAdrs := forsAdrs()
	pkAdrs.SetType(address.FORS_ROOTS)
	// SetType clears the key pair word, so it must be restored for the
	// compression address to match the signing position.
	pkAdrs.SetKeyPairAddress(2)
	return params.Tweak.Tl(pkSeed, pkAdrs, roots)
}

func TestSignRecoversPublicKey(t *testing.T) {
	params := testParams(t)
	skSeed, pkSeed := testSeeds(params)
	pk := expectedPK(params, skSeed, pkSeed)

	mdLen := params.MDLen()
	for _, md := range [][]byte{
		make([]byte, mdLen),
		bytes.Repeat([]byte{0xff}, mdLen),
		{0x5a, 0xc3},
	} {
		nc := cache.NewNodeCache(cache.DefaultCacheSize)
		sig := Fors_sign(params, md, skSeed, pkSeed, forsAdrs(), nc)
		if len(sig) != params.K*(params.A+1)*params.N {
			t.Fatalf("signature length = %d, want %d", len(sig), params.K*(params.A+1)*params.N)
		}
		if got := Fors_pkFromSig(params, sig, md, pkSeed, forsAdrs()); !bytes.Equal(got, pk) {
			t.Errorf("md %x: recovered pk %x, want %x", md, got, pk)
		}
	}
}

func TestWrongDigestYieldsDifferentKey(t *testing.T) {
	params := testParams(t)
	skSeed, pkSeed := testSeeds(params)
	pk := expectedPK(params, skSeed, pkSeed)

	md := []byte{0x12, 0x34}
	nc := cache.NewNodeCache(cache.DefaultCacheSize)
	sig := Fors_sign(params, md, skSeed, pkSeed, forsAdrs(), nc)

	for bit := 0; bit < params.K*params.A; bit++ {
		wrong := make([]byte, len(md))
		copy(wrong, md)
		wrong[bit/8] ^= 0x80 >> (bit & 7)
		if got := Fors_pkFromSig(params, sig, wrong, pkSeed, forsAdrs()); bytes.Equal(got, pk) {
			t.Errorf("bit %d: altered digest still recovered the public key", bit)
		}
	}
}

func TestTamperedSignatureYieldsDifferentKey(t *testing.T) {
	params := testParams(t)
	skSeed, pkSeed := testSeeds(params)
	pk := expectedPK(params, skSeed, pkSeed)

	md := []byte{0x12, 0x34}
	nc := cache.NewNodeCache(cache.DefaultCacheSize)
	sig := Fors_sign(params, md, skSeed, pkSeed, forsAdrs(), nc)

	for off := 0; off < len(sig); off += 7 * params.N {
		tampered := make([]byte, len(sig))
		copy(tampered, sig)
		tampered[off] ^= 0x01
		if got := Fors_pkFromSig(params, tampered, md, pkSeed, forsAdrs()); bytes.Equal(got, pk) {
			t.Errorf("offset %d: tampered signature still recovered the public key", off)
		}
	}
}

func TestNodeMemoization(t *testing.T) {
	params := testParams(t)
	skSeed, pkSeed := testSeeds(params)

	nc := cache.NewNodeCache(cache.DefaultCacheSize)
	first := Fors_node(params, skSeed, 0, uint32(params.A), pkSeed, forsAdrs(), nc)
	if nc.Len() == 0 {
		t.Fatal("cache should hold interior nodes after a root computation")
	}
	second := Fors_node(params, skSeed, 0, uint32(params.A), pkSeed, forsAdrs(), nc)
	if !bytes.Equal(first, second) {
		t.Error("cached root differs from the computed root")
	}

	// A cold cache must agree with the warm one.
	cold := Fors_node(params, skSeed, 0, uint32(params.A), pkSeed, forsAdrs(), cache.NewNodeCache(4))
	if !bytes.Equal(first, cold) {
		t.Error("root depends on cache state")
	}
}

func TestLeafSecretsAreDistinct(t *testing.T) {
	params := testParams(t)
	skSeed, pkSeed := testSeeds(params)
	adrs := forsAdrs()
	if bytes.Equal(Fors_SKgen(params, skSeed, pkSeed, adrs, 0), Fors_SKgen(params, skSeed, pkSeed, adrs, 1)) {
		t.Error("adjacent leaf secrets must differ")
	}
}
