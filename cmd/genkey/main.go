// genkey prints a random token signing key for TOKEN_KEY.
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

func main() {
	size := pflag.IntP("bytes", "n", 64, "key length in bytes (at least 32)")
	pflag.Parse()

	key, err := generate(*size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(key)
}

func generate(size int) (string, error) {
	if size < 32 {
		return "", fmt.Errorf("key must be at least 32 bytes, got %d", size)
	}
	key := make([]byte, size)
	if _, err := rand.Read(key); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(key), nil
}
