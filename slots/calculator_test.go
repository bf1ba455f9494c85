package slots

import (
	"testing"

	"github.com/colorfulnotion/govproof/common"
	ethereumCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"
)

var (
	voterA = ethereumCommon.HexToAddress("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	voterC = ethereumCommon.HexToAddress("0xCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCC")
)

// manualMappingHash concatenates the padded words by hand and hashes them
// with a separate keccak implementation, bypassing the ABI packer.
func manualMappingHash(baseSlot uint64, key ethereumCommon.Address) []byte {
	w := common.SlotWord(baseSlot)
	hash := sha3.NewLegacyKeccak256()
	hash.Write(common.LeftPad32(key.Bytes()))
	hash.Write(w[:])
	return hash.Sum(nil)
}

func TestSingleLevelMatchesSolidityLayout(t *testing.T) {
	for _, slot := range []uint64{0, 1, 9, 52, 64, 81} {
		want := common.StripZeros(manualMappingHash(slot, voterA))
		require.Equal(t, want, SingleLevel(slot, voterA), "slot %d", slot)
	}
}

func TestSingleLevelDeterministicAndInjective(t *testing.T) {
	require.Equal(t, SingleLevel(52, voterA), SingleLevel(52, voterA))
	require.NotEqual(t, SingleLevel(52, voterA), SingleLevel(53, voterA))
	require.NotEqual(t, SingleLevel(52, voterA), SingleLevel(52, voterC))

	// casing of the source hex is irrelevant once parsed
	lower := ethereumCommon.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	require.Equal(t, SingleLevel(0, voterA), SingleLevel(0, lower))
}

func TestSingleLevelStripsLeadingZeros(t *testing.T) {
	var found bool
	for slot := uint64(0); slot < 10000; slot++ {
		full := manualMappingHash(slot, voterA)
		if full[0] != 0 {
			continue
		}
		got := SingleLevel(slot, voterA)
		require.Less(t, len(got), 32)
		require.NotEqual(t, byte(0), got[0])
		require.Equal(t, full[32-len(got):], got)
		found = true
		break
	}
	require.True(t, found, "no slot with a leading zero hash byte in range")
}

func TestSingleLevelKeyIsHex(t *testing.T) {
	key := SingleLevelKey(0, voterA)
	require.Equal(t, common.Bytes2Hex(SingleLevel(0, voterA)), key)
	require.Equal(t, "0x", key[:2])
}

func TestTwoLevelMatchesNestedMappingLayout(t *testing.T) {
	inner := manualMappingHash(9, voterC)
	chain := common.SlotWord(1)
	want := crypto.Keccak256Hash(chain[:], inner)

	got := TwoLevel(9, voterC, 1)
	require.Equal(t, want, got)

	// reversed concatenation must not collide
	require.NotEqual(t, crypto.Keccak256Hash(inner, chain[:]), got)
}

func TestTwoLevelIsolation(t *testing.T) {
	base := TwoLevel(9, voterC, 1)
	require.Equal(t, base, TwoLevel(9, voterC, 1))
	require.NotEqual(t, base, TwoLevel(9, voterC, 137), "chain id must change the slot")
	require.NotEqual(t, base, TwoLevel(9, voterA, 1), "voter must change the slot")
	require.NotEqual(t, base, TwoLevel(10, voterC, 1), "base slot must change the slot")
}
