package common

import (
	"fmt"
	"strings"

	"github.com/colorfulnotion/govproof/goverrors"
	"github.com/holiman/uint256"
)

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// ParseQuantity reads a non-negative integer given either in decimal ("64")
// or as a hex numeral ("0x40"). Leading zeros are tolerated in both forms.
func ParseQuantity(s string) (*uint256.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", goverrors.ErrInvalidQuantity)
	}
	if has0xPrefix(s) {
		if len(s) == 2 {
			return nil, fmt.Errorf("%w: %q", goverrors.ErrInvalidQuantity, s)
		}
		digits := strings.TrimLeft(s[2:], "0")
		if digits == "" {
			return new(uint256.Int), nil
		}
		v, err := uint256.FromHex("0x" + digits)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", goverrors.ErrInvalidQuantity, s, err)
		}
		return v, nil
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return nil, fmt.Errorf("%w: %q", goverrors.ErrInvalidQuantity, s)
		}
	}
	digits := strings.TrimLeft(s, "0")
	if digits == "" {
		return new(uint256.Int), nil
	}
	v, err := uint256.FromDecimal(digits)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", goverrors.ErrInvalidQuantity, s, err)
	}
	return v, nil
}

// ParseUint64 is ParseQuantity restricted to values that fit in 64 bits.
func ParseUint64(s string) (uint64, error) {
	v, err := ParseQuantity(s)
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("%w: %q overflows uint64", goverrors.ErrInvalidQuantity, s)
	}
	return v.Uint64(), nil
}

// IsZeroQuantity reports whether s encodes the value zero.
func IsZeroQuantity(s string) (bool, error) {
	v, err := ParseQuantity(s)
	if err != nil {
		return false, err
	}
	return v.IsZero(), nil
}

// SlotWord is the 32-byte big-endian word for a slot index. Zero is 32 zero
// bytes, never an empty string.
func SlotWord(n uint64) [32]byte {
	return uint256.NewInt(n).Bytes32()
}
