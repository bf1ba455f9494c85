package slots

import (
	"github.com/colorfulnotion/govproof/log"
	"github.com/colorfulnotion/govproof/types"
	ethereumCommon "github.com/ethereum/go-ethereum/common"
)

// VoteBalanceSlot picks the base slot holding a voter's weight for asset.
// Only the delegation-capable asset with delegated power reads its delegation
// slot; every other combination reads the balance slot. Addresses compare as
// 20-byte values, so hex casing never matters.
func VoteBalanceSlot(asset ethereumCommon.Address, delegated bool, delegationAsset ethereumCommon.Address, table types.SlotTable) uint64 {
	useDelegation := delegated && asset == delegationAsset
	entry, ok := table.Lookup(asset)
	if !ok {
		log.Warn(log.SlotModule, "asset missing from slot table, using default layout", "asset", asset, "delegation", useDelegation)
		if useDelegation {
			return types.DefaultDelegationSlot
		}
		return types.DefaultBalanceSlot
	}
	if useDelegation {
		// a zero delegation index is treated as unset
		if entry.Delegation == nil || *entry.Delegation == 0 {
			log.Warn(log.SlotModule, "delegation slot unset, using default", "asset", asset, "slot", types.DefaultDelegationSlot)
			return types.DefaultDelegationSlot
		}
		return uint64(*entry.Delegation)
	}
	return uint64(entry.Balance)
}
