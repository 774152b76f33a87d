// Command lwrcli drives the transciphering client: key management,
// keystream inspection, and encryption/decryption of Z_p symbol sequences.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"LWR-PRF/lwrprf"
)

func usage() {
	fmt.Println(`usage: lwrcli [options]

Options:
  -n, -N, -p        PRF parameters (default: n=445, N=2048, p=32)
  -key <path>       secret key file (default: secret_key.json)
  -seed <int>       deterministic key-generation seed (0 = fresh random key)
  -force            regenerate the key even if the file exists
  -nonce <string>   nonce for keystream/encrypt/decrypt

Actions (exactly one):
  -keygen           load or generate the key, print a summary
  -stream <count>   print the first <count> keystream symbols for -nonce
  -encrypt <m0,m1,...>   encrypt Z_p symbols under -nonce
  -decrypt <c0,c1,...>   decrypt Z_p symbols under -nonce`)
	os.Exit(1)
}

func parseSymbols(s string) ([]uint64, error) {
	parts := strings.Split(s, ",")
	out := make([]uint64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid symbol %q: %w", part, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func main() {
	n := flag.Int("n", 445, "secret-key dimension n")
	ringDim := flag.Uint64("N", 2048, "ring dimension N (power of two)")
	p := flag.Uint64("p", 32, "plaintext modulus p")
	keyFile := flag.String("key", "secret_key.json", "secret key file")
	seed := flag.Uint64("seed", 0, "deterministic key seed (0 = fresh random key)")
	force := flag.Bool("force", false, "regenerate the key even if the file exists")
	nonce := flag.String("nonce", "", "nonce string")
	keygen := flag.Bool("keygen", false, "load or generate the key and exit")
	stream := flag.Int("stream", 0, "print this many keystream symbols")
	encryptStr := flag.String("encrypt", "", "comma-separated message symbols")
	decryptStr := flag.String("decrypt", "", "comma-separated ciphertext symbols")
	flag.Parse()

	actions := 0
	for _, set := range []bool{*keygen, *stream > 0, *encryptStr != "", *decryptStr != ""} {
		if set {
			actions++
		}
	}
	if actions != 1 {
		usage()
	}

	params := lwrprf.Params{Dim: *n, RingDim: *ringDim, P: *p}
	var seedBytes []byte
	if *seed != 0 {
		seedBytes = lwrprf.SeedUint64(*seed)
	}
	client, err := lwrprf.Open(params, lwrprf.KeyStoreOptions{
		Path:            *keyFile,
		Seed:            seedBytes,
		ForceRegenerate: *force,
	})
	if err != nil {
		log.Fatalf("open client: %v", err)
	}

	switch {
	case *keygen:
		key := client.Key()
		fmt.Printf("Secret key ready in %s (n=%d)\n", *keyFile, key.N)
		fmt.Printf("  bits [0:20]:  %v\n", key.Bits[:min(20, len(key.Bits))])
		fmt.Printf("  bits [n-20:]: %v\n", key.Bits[max(0, len(key.Bits)-20):])

	case *stream > 0:
		ks, err := client.EvaluateMany([]byte(*nonce), *stream)
		if err != nil {
			log.Fatalf("keystream: %v", err)
		}
		for i, v := range ks {
			fmt.Printf("PRF[%d] = %d\n", i, v)
		}

	case *encryptStr != "":
		msg, err := parseSymbols(*encryptStr)
		if err != nil {
			log.Fatalf("parse message: %v", err)
		}
		ct, err := client.Encrypt(msg, []byte(*nonce))
		if err != nil {
			log.Fatalf("encrypt: %v", err)
		}
		fmt.Println("Ciphertext:", join(ct))

	case *decryptStr != "":
		ct, err := parseSymbols(*decryptStr)
		if err != nil {
			log.Fatalf("parse ciphertext: %v", err)
		}
		msg, err := client.Decrypt([]byte(*nonce), ct)
		if err != nil {
			log.Fatalf("decrypt: %v", err)
		}
		fmt.Println("Message:", join(msg))
	}
}

func join(vals []uint64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatUint(v, 10)
	}
	return strings.Join(parts, ",")
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
