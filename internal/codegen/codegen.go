// Package codegen generates cryptographically random codes and tokens.
package codegen

import (
	"crypto/rand"
	"errors"
	"strings"
)

const (
	// TokenLen gives ~190 bits of entropy with TokenChars.
	TokenLen = 32
	// DiscountGroupLen is the length of each dash separated group in a discount code.
	DiscountGroupLen = 4
	// DiscountGroups is the number of groups in a generated discount code.
	DiscountGroups = 2

	// bytes requested per round, rejected bytes are refilled
	readChunk = 64
)

var (
	// TokenChars are the characters of unsubscribe and state tokens.
	TokenChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	// CodeChars are the characters of discount codes. 0, O, 1 and I are left out
	// so codes can be read aloud.
	CodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// ErrCharset is returned for a charset shorter than 2 or longer than 256.
	ErrCharset = errors.New("codegen: charset must hold 2 to 256 characters")
)

// String returns a random string of length drawn uniformly from chars.
func String(length int, chars string) (string, error) {
	n := len(chars)
	if n < 2 || n > 256 {
		return "", ErrCharset
	}

	if length <= 0 {
		return "", nil
	}

	// largest byte value that maps uniformly onto chars
	limit := 255 - (256 % n)
	out := make([]byte, 0, length)
	buf := make([]byte, readChunk)

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", err //nolint:wrapcheck
		}

		for _, b := range buf {
			if int(b) > limit {
				continue
			}

			out = append(out, chars[int(b)%n])
			if len(out) == length {
				break
			}
		}
	}

	return string(out), nil
}

// Token returns a random URL safe token.
func Token() (string, error) {
	return String(TokenLen, TokenChars)
}

// DiscountCode returns a code like "K7QD-M2XP".
func DiscountCode() (string, error) {
	groups := make([]string, 0, DiscountGroups)

	for range DiscountGroups {
		g, err := String(DiscountGroupLen, CodeChars)
		if err != nil {
			return "", err
		}

		groups = append(groups, g)
	}

	return strings.Join(groups, "-"), nil
}
