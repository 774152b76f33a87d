package lwrprf

import (
	"errors"
	"testing"
)

// Golden key for seed 42, n=445, generated once from the reference
// implementation.
var goldenKeyHead = []uint64{0, 1, 1, 0, 0, 1, 1, 0, 1, 0, 1, 1, 0, 0, 1, 0, 1, 0, 1, 1}
var goldenKeyTail = []uint64{0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 1, 0, 0, 1, 1, 0}

const goldenKeyWeight = 234

func TestGenerateKeyGolden(t *testing.T) {
	key, err := GenerateKey(445, SeedUint64(42))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if key.N != 445 || len(key.Bits) != 445 {
		t.Fatalf("dimension %d/%d want 445", key.N, len(key.Bits))
	}
	for i, want := range goldenKeyHead {
		if key.Bits[i] != want {
			t.Fatalf("bit %d = %d want %d", i, key.Bits[i], want)
		}
	}
	for i, want := range goldenKeyTail {
		j := len(key.Bits) - len(goldenKeyTail) + i
		if key.Bits[j] != want {
			t.Fatalf("bit %d = %d want %d", j, key.Bits[j], want)
		}
	}
	weight := uint64(0)
	for _, b := range key.Bits {
		weight += b
	}
	if weight != goldenKeyWeight {
		t.Fatalf("hamming weight %d want %d", weight, goldenKeyWeight)
	}
}

func TestGenerateKeySeedReproducible(t *testing.T) {
	k1, err := GenerateKey(445, SeedUint64(42))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	k2, err := GenerateKey(445, SeedUint64(42))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for i := range k1.Bits {
		if k1.Bits[i] != k2.Bits[i] {
			t.Fatalf("same seed diverged at bit %d", i)
		}
	}
}

func TestGenerateKeySeedsSeparate(t *testing.T) {
	k1, err := GenerateKey(445, SeedUint64(42))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	k2, err := GenerateKey(445, SeedUint64(43))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	same := true
	for i := range k1.Bits {
		if k1.Bits[i] != k2.Bits[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("seeds 42 and 43 produced identical keys")
	}
}

func TestGenerateKeyFresh(t *testing.T) {
	k1, err := GenerateKey(445, nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	k2, err := GenerateKey(445, nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := k1.Validate(); err != nil {
		t.Fatalf("fresh key invalid: %v", err)
	}
	same := true
	for i := range k1.Bits {
		if k1.Bits[i] != k2.Bits[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("two fresh keys are identical")
	}
}

func TestGenerateKeyRejectsBadDimension(t *testing.T) {
	if _, err := GenerateKey(0, nil); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("n=0: got err %v", err)
	}
	if _, err := GenerateKey(-3, SeedUint64(1)); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("n=-3: got err %v", err)
	}
}
