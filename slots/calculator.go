// Package slots derives the storage keys where Solidity keeps mapping entries.
//
// A value in mapping(address => T) declared at base slot p lives at
// keccak256(abi.encode(key, p)). For mapping(address => mapping(uint256 => T))
// the inner mapping's base is that same hash, and the value for (k1, k2) lives
// at keccak256(abi.encode(k2) . keccak256(abi.encode(k1, p))).
package slots

import (
	"math/big"

	"github.com/colorfulnotion/govproof/common"
	"github.com/colorfulnotion/govproof/log"
	"github.com/ethereum/go-ethereum/accounts/abi"
	ethereumCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

func mustType(t string) abi.Type {
	ty, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return ty
}

var (
	addressT = mustType("address")
	uint256T = mustType("uint256")

	// abi.encode(address, uint256)
	addressSlotArgs = abi.Arguments{{Type: addressT}, {Type: uint256T}}
	// abi.encode(uint256)
	uintArgs = abi.Arguments{{Type: uint256T}}
)

func word(n uint64) *big.Int {
	return uint256.NewInt(n).ToBig()
}

// mappingHash is keccak256(abi.encode(address key, uint256 baseSlot)).
func mappingHash(baseSlot uint64, key ethereumCommon.Address) ethereumCommon.Hash {
	packed, err := addressSlotArgs.Pack(key, word(baseSlot))
	if err != nil {
		// static types with matching Go values cannot fail to pack
		panic(err)
	}
	return crypto.Keccak256Hash(packed)
}

// SingleLevel returns the slot of key in a mapping(address => T) declared at
// baseSlot, with leading zero bytes stripped.
func SingleLevel(baseSlot uint64, key ethereumCommon.Address) []byte {
	h := mappingHash(baseSlot, key)
	return common.StripZeros(h.Bytes())
}

// SingleLevelKey is SingleLevel rendered as the storage key sent to
// eth_getProof. Nodes left-pad keys shorter than 32 bytes.
func SingleLevelKey(baseSlot uint64, key ethereumCommon.Address) string {
	slot := hexutil.Encode(SingleLevel(baseSlot, key))
	log.Trace(log.SlotModule, "single-level slot", "base", baseSlot, "key", key, "slot", slot)
	return slot
}

// TwoLevel returns the slot of (voter, chainID) in a
// mapping(address => mapping(uint256 => T)) declared at baseSlot. The result
// is a full 32-byte word.
func TwoLevel(baseSlot uint64, voter ethereumCommon.Address, chainID uint64) ethereumCommon.Hash {
	inner := mappingHash(baseSlot, voter)
	outerKey, err := uintArgs.Pack(word(chainID))
	if err != nil {
		panic(err)
	}
	slot := crypto.Keccak256Hash(outerKey, inner.Bytes())
	log.Trace(log.SlotModule, "two-level slot", "base", baseSlot, "voter", voter, "chain", chainID, "inner", inner, "slot", slot)
	return slot
}
