package usecase

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// firstLetterUppercase normalizes a username: first letter uppercased, rest
// unchanged.
func firstLetterUppercase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// randomDigits generates an n-digit numeric string with a non-zero leading
// digit, used for the public uId.
func randomDigits(n int) (string, error) {
	var b strings.Builder
	for i := 0; i < n; i++ {
		limit := big.NewInt(10)
		offset := int64(0)
		if i == 0 {
			limit = big.NewInt(9)
			offset = 1
		}
		v, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		fmt.Fprintf(&b, "%d", v.Int64()+offset)
	}
	return b.String(), nil
}

// randomHex generates n random bytes hex-encoded, used for reset tokens.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
