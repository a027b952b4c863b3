/*
Package randx generates cryptographically secure random identifiers.

It produces fixed-length Base62 project codes and UUID-based identifiers used
for storage keys and connection ids.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// Base62Chars is the character set used for Base62 encoding (0-9, A-Z, a-z).
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// Base62Len is the size of the Base62 character set.
	Base62Len = int64(len(Base62Chars))

	// ProjectCodeLength is the fixed length of generated project codes.
	ProjectCodeLength = 8
)

// ProjectCode generates a Base62 project code of ProjectCodeLength characters
// using crypto/rand.
func ProjectCode() (string, error) {
	result := make([]byte, ProjectCodeLength)

	for i := 0; i < ProjectCodeLength; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(Base62Len))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number for project code: %v", err)
		}

		result[i] = Base62Chars[num.Int64()]
	}

	return string(result), nil
}

// IsValidProjectCode reports whether the given string has the exact length and
// character set of a generated project code.
func IsValidProjectCode(code string) bool {
	if len(code) != ProjectCodeLength {
		return false
	}

	for _, char := range code {
		if !strings.ContainsRune(Base62Chars, char) {
			return false
		}
	}

	return true
}

// ConnectionID generates a UUID v4 string identifying a single client connection.
func ConnectionID() string {
	return uuid.New().String()
}

// FileID generates a UUID v4 string used as the unique part of a storage key.
func FileID() string {
	return uuid.New().String()
}
