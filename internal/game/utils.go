package game

import (
	crand "crypto/rand"
	"math/big"
	"math/rand/v2"
	"strings"
	"unicode/utf8"
)

// GenerateRoomCode creates a random room code
func GenerateRoomCode() string {
	code := make([]byte, RoomCodeLength)
	for i := range RoomCodeLength {
		n, err := crand.Int(crand.Reader, big.NewInt(int64(len(RoomCodeChars))))
		if err != nil {
			// fallback to math/rand if crypto fails
			code[i] = RoomCodeChars[rand.IntN(len(RoomCodeChars))]
			continue
		}
		code[i] = RoomCodeChars[n.Int64()]
	}
	return string(code)
}

// NormalizeRoomCode trims and upper-cases user input before lookup
func NormalizeRoomCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidRoomCode reports whether code is exactly RoomCodeLength ASCII letters or digits.
// Codes from other generators are accepted as long as they have that shape.
func ValidRoomCode(code string) bool {
	if len(code) != RoomCodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		isDigit := c >= '0' && c <= '9'
		isLetter := (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
		if !isDigit && !isLetter {
			return false
		}
	}
	return true
}

// ValidPlayerName reports whether the trimmed name has 1 to MaxNameLength runes
func ValidPlayerName(name string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	return n >= 1 && n <= MaxNameLength
}
