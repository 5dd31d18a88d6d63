package xmss

import (
	"bytes"
	"testing"

	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/address"
	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/cache"
	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/parameters"
)

func testParams(t *testing.T) *parameters.Parameters {
	t.Helper()
	params, err := parameters.MakeSLHDSAParams(16, 16, 6, 2, 2, 2, "SHAKE256", false)
	if err != nil {
		t.Fatal(err)
	}
	return params
}

func treeAdrs() *address.ADRS {
	return address.New(1, 9)
}

func testSeeds(params *parameters.Parameters) (skSeed, pkSeed []byte) {
	skSeed = make([]byte, params.N)
	pkSeed = make([]byte, params.N)
	for i := range skSeed {
		skSeed[i] = byte(0x30 + i)
		pkSeed[i] = byte(0x90 + i)
	}
	return
}

func TestSignVerifyEveryLeaf(t *testing.T) {
	params := testParams(t)
	skSeed, pkSeed := testSeeds(params)

	nc := cache.NewNodeCache(cache.DefaultCacheSize)
	root := Xmss_node(params, skSeed, 0, uint32(params.Hprime), pkSeed, treeAdrs(), nc)
	if len(root) != params.N {
		t.Fatalf("root length = %d, want %d", len(root), params.N)
	}

	msg := make([]byte, params.N)
	for i := range msg {
		msg[i] = byte(0x61 + i)
	}

	for idx := uint32(0); idx < 1<<params.Hprime; idx++ {
		sig := Xmss_sign(params, msg, skSeed, idx, pkSeed, treeAdrs(), nc)
		wantLen := (params.Len + params.Hprime) * params.N
		if len(sig) != wantLen {
			t.Fatalf("leaf %d: signature length = %d, want %d", idx, len(sig), wantLen)
		}
		if got := Xmss_pkFromSig(params, idx, sig, msg, pkSeed, treeAdrs()); !bytes.Equal(got, root) {
			t.Errorf("leaf %d: recovered root %x, want %x", idx, got, root)
		}
	}
}

func TestWrongLeafIndexFails(t *testing.T) {
	params := testParams(t)
	skSeed, pkSeed := testSeeds(params)

	nc := cache.NewNodeCache(cache.DefaultCacheSize)
	root := Xmss_node(params, skSeed, 0, uint32(params.Hprime), pkSeed, treeAdrs(), nc)

	msg := make([]byte, params.N)
	sig := Xmss_sign(params, msg, skSeed, 3, pkSeed, treeAdrs(), nc)
	if got := Xmss_pkFromSig(params, 5, sig, msg, pkSeed, treeAdrs()); bytes.Equal(got, root) {
		t.Error("signature verified under the wrong leaf index")
	}
}

func TestTamperedMessageFails(t *testing.T) {
	params := testParams(t)
	skSeed, pkSeed := testSeeds(params)

	nc := cache.NewNodeCache(cache.DefaultCacheSize)
	root := Xmss_node(params, skSeed, 0, uint32(params.Hprime), pkSeed, treeAdrs(), nc)

	msg := make([]byte, params.N)
	sig := Xmss_sign(params, msg, skSeed, 0, pkSeed, treeAdrs(), nc)

	wrong := make([]byte, len(msg))
	wrong[0] = 0x80
	if got := Xmss_pkFromSig(params, 0, sig, wrong, pkSeed, treeAdrs()); bytes.Equal(got, root) {
		t.Error("altered message still recovered the root")
	}
}

func TestRootsDifferAcrossTrees(t *testing.T) {
	params := testParams(t)
	skSeed, pkSeed := testSeeds(params)

	nc := cache.NewNodeCache(cache.DefaultCacheSize)
	a := Xmss_node(params, skSeed, 0, uint32(params.Hprime), pkSeed, address.New(1, 9), nc)
	b := Xmss_node(params, skSeed, 0, uint32(params.Hprime), pkSeed, address.New(1, 10), nc)
	c := Xmss_node(params, skSeed, 0, uint32(params.Hprime), pkSeed, address.New(2, 9), nc)
	if bytes.Equal(a, b) || bytes.Equal(a, c) {
		t.Error("trees at distinct addresses must have distinct roots")
	}
}

func TestMemoizedRootMatchesColdRoot(t *testing.T) {
	params := testParams(t)
	skSeed, pkSeed := testSeeds(params)

	warm := cache.NewNodeCache(cache.DefaultCacheSize)
	first := Xmss_node(params, skSeed, 0, uint32(params.Hprime), pkSeed, treeAdrs(), warm)
	second := Xmss_node(params, skSeed, 0, uint32(params.Hprime), pkSeed, treeAdrs(), warm)
	cold := Xmss_node(params, skSeed, 0, uint32(params.Hprime), pkSeed, treeAdrs(), cache.NewNodeCache(2))
	if !bytes.Equal(first, second) || !bytes.Equal(first, cold) {
		t.Error("root value depends on cache state")
	}
}
