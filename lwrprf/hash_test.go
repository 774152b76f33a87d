package lwrprf

import (
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"golang.org/x/crypto/sha3"
)

// Golden values generated once from the reference implementation with
// n=445, N=2048.
var goldenTestNonceHead = []uint64{2202, 3199, 1992, 587, 3417, 1666, 699, 2076}
var goldenTestNonceTail = []uint64{3829, 4021, 485, 754}

func TestHashToVectorGolden(t *testing.T) {
	a, err := HashToVector(ParamsN445, []byte("test_nonce"), 0)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if len(a) != 445 {
		t.Fatalf("len = %d want 445", len(a))
	}
	for i, want := range goldenTestNonceHead {
		if a[i] != want {
			t.Fatalf("a[%d] = %d want %d", i, a[i], want)
		}
	}
	for i, want := range goldenTestNonceTail {
		j := len(a) - len(goldenTestNonceTail) + i
		if a[j] != want {
			t.Fatalf("a[%d] = %d want %d", j, a[j], want)
		}
	}
}

func TestHashToVectorGoldenOtherInputs(t *testing.T) {
	cases := []struct {
		input string
		index uint64
		head  []uint64
	}{
		{"abc", 7, []uint64{2628, 1181, 1738, 2518}},
		{"", 0, []uint64{273, 1376, 1153, 1519}},
	}
	for _, tc := range cases {
		a, err := HashToVector(ParamsN445, []byte(tc.input), tc.index)
		if err != nil {
			t.Fatalf("hash(%q,%d): %v", tc.input, tc.index, err)
		}
		for i, want := range tc.head {
			if a[i] != want {
				t.Fatalf("hash(%q,%d)[%d] = %d want %d", tc.input, tc.index, i, a[i], want)
			}
		}
	}
}

func TestHashToVectorDeterministic(t *testing.T) {
	a1, err := HashToVector(ParamsN445, []byte("nonce"), 3)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	a2, err := HashToVector(ParamsN445, []byte("nonce"), 3)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	for i := range a1 {
		if a1[i] != a2[i] {
			t.Fatalf("mismatch at %d: %d vs %d", i, a1[i], a2[i])
		}
	}
}

func TestHashToVectorIndexSeparation(t *testing.T) {
	a0, err := HashToVector(ParamsN445, []byte("nonce"), 0)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	a1, err := HashToVector(ParamsN445, []byte("nonce"), 1)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	same := 0
	for i := range a0 {
		if a0[i] == a1[i] {
			same++
		}
	}
	// Distinct indices must give essentially unrelated vectors; identical
	// ones would mean the index is not absorbed.
	if same == len(a0) {
		t.Fatalf("index 0 and 1 produced identical vectors")
	}
}

func TestHashToVectorRange(t *testing.T) {
	a, err := HashToVector(ParamsN445, []byte("range_check"), 9)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	twoN := ParamsN445.TwoN()
	for i, v := range a {
		if v >= twoN {
			t.Fatalf("a[%d] = %d outside [0,%d)", i, v, twoN)
		}
	}
}

// TestHashToVectorTranscript pins the absorb order against a manually driven
// SHAKE256: input bytes first, 8-byte little-endian index second.
func TestHashToVectorTranscript(t *testing.T) {
	input := []byte("transcript")
	const index = uint64(11)

	h := sha3.NewShake256()
	h.Write(input)
	var idx [8]byte
	binary.LittleEndian.PutUint64(idx[:], index)
	h.Write(idx[:])
	raw := make([]byte, 8)
	if _, err := io.ReadFull(h, raw); err != nil {
		t.Fatalf("squeeze: %v", err)
	}
	want := binary.LittleEndian.Uint64(raw) % ParamsN445.TwoN()

	a, err := HashToVector(ParamsN445, input, index)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a[0] != want {
		t.Fatalf("a[0] = %d, transcript says %d", a[0], want)
	}

	// Swapping the absorb order must change the vector.
	h2 := sha3.NewShake256()
	h2.Write(idx[:])
	h2.Write(input)
	if _, err := io.ReadFull(h2, raw); err != nil {
		t.Fatalf("squeeze: %v", err)
	}
	swapped := binary.LittleEndian.Uint64(raw) % ParamsN445.TwoN()
	if swapped == a[0] {
		t.Fatalf("swapped absorb order produced the contract value %d", a[0])
	}
}

func TestHashToVectorInvalidParams(t *testing.T) {
	_, err := HashToVector(Params{Dim: 4, RingDim: 1000, P: 8}, []byte("x"), 0)
	if !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("got err %v want ErrInvalidParams", err)
	}
}
