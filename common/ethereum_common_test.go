package common

import (
	"errors"
	"testing"

	"github.com/colorfulnotion/govproof/goverrors"
	ethereumCommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		in   string
		want uint64
	}{
		{"0", 0},
		{"64", 64},
		{"0x40", 64},
		{"0x0040", 64},
		{"0X34", 52},
		{"0x0", 0},
		{"0x00", 0},
		{" 81 ", 81},
		{"007", 7},
	}
	for _, tc := range cases {
		v, err := ParseQuantity(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, v.Uint64(), tc.in)
	}

	for _, bad := range []string{"", "0x", "-1", "1e3", "0xzz", "abc"} {
		_, err := ParseQuantity(bad)
		require.Error(t, err, bad)
		require.True(t, errors.Is(err, goverrors.ErrInvalidQuantity), bad)
	}
}

func TestParseUint64Overflow(t *testing.T) {
	_, err := ParseUint64("0x10000000000000000")
	require.ErrorIs(t, err, goverrors.ErrInvalidQuantity)

	v, err := ParseUint64("0xffffffffffffffff")
	require.NoError(t, err)
	require.Equal(t, ^uint64(0), v)
}

func TestIsZeroQuantity(t *testing.T) {
	for _, zero := range []string{"0", "00", "0x0"} {
		ok, err := IsZeroQuantity(zero)
		require.NoError(t, err)
		require.True(t, ok, zero)
	}
	ok, err := IsZeroQuantity("5")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSlotWord(t *testing.T) {
	zero := SlotWord(0)
	require.Equal(t, [32]byte{}, zero)

	w := SlotWord(64)
	require.Equal(t, byte(0x40), w[31])
	require.Equal(t, make([]byte, 31), w[:31])
}

func TestStripAndPad(t *testing.T) {
	require.Equal(t, []byte{0x01, 0x00}, StripZeros([]byte{0x00, 0x00, 0x01, 0x00}))
	require.Empty(t, StripZeros([]byte{0x00, 0x00}))
	require.Equal(t, []byte{0xab}, StripZeros([]byte{0xab}))

	padded := LeftPad32([]byte{0x01, 0x02})
	require.Len(t, padded, 32)
	require.Equal(t, []byte{0x01, 0x02}, padded[30:])
}

func TestAddresses(t *testing.T) {
	checksummed := "0xA700b4eB416Be35b2911fd5Dee80678ff64fF6C9"
	lower := "0xa700b4eb416be35b2911fd5dee80678ff64ff6c9"
	require.True(t, SameAddress(checksummed, lower))
	require.False(t, SameAddress(checksummed, "0x7Fc66500c84A76Ad7e9c93437bFc5Ac33E2DDaE9"))

	addr, err := ParseAddress(lower)
	require.NoError(t, err)
	require.Equal(t, ethereumCommon.HexToAddress(checksummed), addr)

	_, err = ParseAddress("0x1234")
	require.ErrorIs(t, err, goverrors.ErrInvalidAddress)
}

func TestParseHash(t *testing.T) {
	h, err := ParseHash("0x00000000000000000000000000000000000000000000000000000000000000bb")
	require.NoError(t, err)
	require.Equal(t, byte(0xbb), h[31])

	_, err = ParseHash("0xbb")
	require.Error(t, err)
	_, err = ParseHash("bb")
	require.Error(t, err)
}

func TestMinimalHex(t *testing.T) {
	require.Equal(t, "0x64", MinimalHex(100))
	require.Equal(t, "0x0", MinimalHex(0))
	require.Equal(t, "0x10", MinimalHex(16))
}
