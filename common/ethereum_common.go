package common

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/colorfulnotion/govproof/goverrors"
	ethereumCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ParseAddress converts a hex string, checksummed or not, into an address.
func ParseAddress(s string) (ethereumCommon.Address, error) {
	s = strings.TrimSpace(s)
	if !ethereumCommon.IsHexAddress(s) {
		return ethereumCommon.Address{}, fmt.Errorf("%w: %q", goverrors.ErrInvalidAddress, s)
	}
	return ethereumCommon.HexToAddress(s), nil
}

// SameAddress compares two address strings ignoring case, so checksummed and
// lowercase forms of the same account are equal.
func SameAddress(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if ethereumCommon.IsHexAddress(a) && ethereumCommon.IsHexAddress(b) {
		return ethereumCommon.HexToAddress(a) == ethereumCommon.HexToAddress(b)
	}
	return strings.EqualFold(a, b)
}

// ParseHash decodes a 0x-prefixed 32-byte hex string.
func ParseHash(s string) (ethereumCommon.Hash, error) {
	b, err := hexutil.Decode(strings.TrimSpace(s))
	if err != nil {
		return ethereumCommon.Hash{}, fmt.Errorf("hash %q: %w", s, err)
	}
	if len(b) != ethereumCommon.HashLength {
		return ethereumCommon.Hash{}, fmt.Errorf("hash %q: want %d bytes, got %d", s, ethereumCommon.HashLength, len(b))
	}
	return ethereumCommon.BytesToHash(b), nil
}

// StripZeros drops the leading zero bytes of b. A slice of zeros becomes empty.
func StripZeros(b []byte) []byte {
	return bytes.TrimLeft(b, "\x00")
}

// LeftPad32 left-pads b with zero bytes to a 32-byte word.
func LeftPad32(b []byte) []byte {
	return ethereumCommon.LeftPadBytes(b, 32)
}

// MinimalHex renders n as a 0x-prefixed hex numeral without leading zeros.
func MinimalHex(n uint64) string {
	return hexutil.EncodeUint64(n)
}

func Bytes2Hex(d []byte) string {
	return hexutil.Encode(d)
}
