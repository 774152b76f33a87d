package lwrprf

import "fmt"

// Encrypt adds the keystream derived from nonce to the message modulo p:
// ciphertext[i] = (message[i] + keystream[i]) mod p. Every message symbol
// must already lie in [0, p); out-of-range symbols are rejected before any
// keystream is generated, since the homomorphic server could not decrypt
// them correctly.
func (c *Client) Encrypt(message []uint64, nonce []byte) ([]uint64, error) {
	p := c.params.P
	for i, m := range message {
		if m >= p {
			return nil, fmt.Errorf("%w: message[%d]=%d, plaintext modulus p=%d", ErrOutOfRange, i, m, p)
		}
	}
	ks, err := c.EvaluateMany(nonce, len(message))
	if err != nil {
		return nil, err
	}
	return combine(message, ks, p, false)
}

// Decrypt recomputes the keystream for nonce and inverts the addition:
// message[i] = (ciphertext[i] - keystream[i] + p) mod p. The +p before the
// reduction keeps the difference non-negative; both operands are already
// in [0, p) so the sum cannot overflow.
func (c *Client) Decrypt(nonce []byte, ciphertext []uint64) ([]uint64, error) {
	p := c.params.P
	for i, ct := range ciphertext {
		if ct >= p {
			return nil, fmt.Errorf("%w: ciphertext[%d]=%d, plaintext modulus p=%d", ErrOutOfRange, i, ct, p)
		}
	}
	ks, err := c.EvaluateMany(nonce, len(ciphertext))
	if err != nil {
		return nil, err
	}
	return combine(ciphertext, ks, p, true)
}

// combine pairs a symbol sequence with its keystream position by position.
// Length disagreement is rejected before any arithmetic.
func combine(symbols, keystream []uint64, p uint64, subtract bool) ([]uint64, error) {
	if len(symbols) != len(keystream) {
		return nil, fmt.Errorf("%w: %d symbols, %d keystream outputs", ErrLengthMismatch, len(symbols), len(keystream))
	}
	out := make([]uint64, len(symbols))
	for i := range symbols {
		if subtract {
			out[i] = (symbols[i] + p - keystream[i]) % p
		} else {
			out[i] = (symbols[i] + keystream[i]) % p
		}
	}
	return out, nil
}
