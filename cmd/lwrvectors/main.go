// Command lwrvectors generates the verification artifacts for the hardware
// implementation: hash_vector.mem and secret_key.mem, plus every expected
// intermediate value of one PRF evaluation for the testbench to compare.
package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"LWR-PRF/lwrprf"
	"LWR-PRF/lwrprf/export"
)

func main() {
	n := flag.Int("n", 445, "secret-key dimension n")
	ringDim := flag.Uint64("N", 2048, "ring dimension N (power of two)")
	p := flag.Uint64("p", 32, "plaintext modulus p")
	seed := flag.Uint64("seed", 42, "deterministic key-generation seed")
	keyFile := flag.String("key", "secret_key.json", "secret key file")
	force := flag.Bool("force", false, "regenerate the key even if the file exists")
	nonce := flag.String("nonce", "test_nonce", "test nonce")
	index := flag.Uint64("index", 0, "slot index")
	outDir := flag.String("out", ".", "output directory for .mem files")
	flag.Parse()

	params := lwrprf.Params{Dim: *n, RingDim: *ringDim, P: *p}
	client, err := lwrprf.Open(params, lwrprf.KeyStoreOptions{
		Path:            *keyFile,
		Seed:            lwrprf.SeedUint64(*seed),
		ForceRegenerate: *force,
	})
	if err != nil {
		log.Fatalf("open client: %v", err)
	}
	key := client.Key()
	fmt.Printf("Parameters: n=%d, N=%d, p=%d (inner product needs %d bits)\n", *n, *ringDim, *p, params.MinAccBits())
	fmt.Printf("Secret key bits [0:20]:  %v\n", key.Bits[:min(20, len(key.Bits))])
	fmt.Printf("Secret key bits [n-20:]: %v\n", key.Bits[max(0, len(key.Bits)-20):])

	a, err := lwrprf.HashToVector(params, []byte(*nonce), *index)
	if err != nil {
		log.Fatalf("hash to vector: %v", err)
	}

	hashPath := filepath.Join(*outDir, "hash_vector.mem")
	if err := export.HashVectorFile(hashPath, params, a); err != nil {
		log.Fatalf("export hash vector: %v", err)
	}
	keyPath := filepath.Join(*outDir, "secret_key.mem")
	if err := export.SecretKeyFile(keyPath, key); err != nil {
		log.Fatalf("export secret key: %v", err)
	}
	fmt.Printf("Wrote %s (%d elements) and %s (%d bits)\n", hashPath, len(a), keyPath, len(key.Bits))

	tr, err := client.TraceEvaluate(a)
	if err != nil {
		log.Fatalf("evaluate: %v", err)
	}
	fmt.Printf("\nExpected values for nonce %q, index %d:\n", *nonce, *index)
	fmt.Printf("  inner product:   %d\n", tr.InnerProduct)
	fmt.Printf("  mod 2N:          %d\n", tr.Mod2N)
	fmt.Printf("  mod N:           %d\n", tr.ModN)
	fmt.Printf("  msb:             %d\n", tr.MSB)
	fmt.Printf("  rounded:         %d\n", tr.Rounded)
	fmt.Printf("  prf output:      %d\n", tr.Output)

	// Encryption sanity for the testbench: one symbol through the cipher.
	const plaintext = 10
	ct := (plaintext + tr.Output) % *p
	pt := (ct + *p - tr.Output) % *p
	fmt.Printf("\nEncryption check (plaintext %d):\n", plaintext)
	fmt.Printf("  ciphertext: (%d + %d) mod %d = %d\n", plaintext, tr.Output, *p, ct)
	fmt.Printf("  decrypted:  (%d - %d + %d) mod %d = %d\n", ct, tr.Output, *p, *p, pt)
	if pt != plaintext {
		log.Fatalf("round trip failed: got %d want %d", pt, plaintext)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
