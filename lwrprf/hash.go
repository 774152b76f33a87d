package lwrprf

import (
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/sha3"
)

// HashToVector maps (input, index) to a vector of n values in [0, 2N).
// SHAKE256 absorbs the input bytes first and the 8-byte little-endian slot
// index second, then n*8 output bytes are split into consecutive
// little-endian 64-bit words, each reduced modulo 2N.
//
// Every detail here is part of the wire contract: a different primitive,
// absorb order, or byte order yields a vector the homomorphic server and
// the RTL testbench cannot reproduce.
func HashToVector(params Params, input []byte, index uint64) ([]uint64, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	h := sha3.NewShake256()
	if _, err := h.Write(input); err != nil {
		panic(fmt.Errorf("HashToVector: absorb input: %w", err))
	}
	if _, err := h.Write(u64le(index)); err != nil {
		panic(fmt.Errorf("HashToVector: absorb index: %w", err))
	}
	stream := make([]byte, params.Dim*8)
	if _, err := io.ReadFull(h, stream); err != nil {
		panic(fmt.Errorf("HashToVector: squeeze: %w", err))
	}
	twoN := params.TwoN()
	a := make([]uint64, params.Dim)
	for i := range a {
		a[i] = binary.LittleEndian.Uint64(stream[i*8:]) % twoN
	}
	return a, nil
}

func u64le(v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return buf[:]
}
