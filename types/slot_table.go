package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/colorfulnotion/govproof/common"
	ethereumCommon "github.com/ethereum/go-ethereum/common"
)

// Fallback base slots for assets missing from a slot table. They mirror the
// storage layout of the deployed voting contracts and must not be changed
// independently of them.
const (
	DefaultBalanceSlot    uint64 = 0
	DefaultDelegationSlot uint64 = 64
)

// SlotIndex is a base storage slot index. In JSON it may be a number or a
// decimal/hex string.
type SlotIndex uint64

func (s *SlotIndex) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		v, err := common.ParseUint64(str)
		if err != nil {
			return err
		}
		*s = SlotIndex(v)
		return nil
	}
	v, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("slot index %s: %w", data, err)
	}
	*s = SlotIndex(v)
	return nil
}

// SlotEntry holds the base slot indices of one asset contract.
type SlotEntry struct {
	Balance      SlotIndex  `json:"balance"`
	Delegation   *SlotIndex `json:"delegation,omitempty"`
	ExchangeRate *SlotIndex `json:"exchangeRate,omitempty"`
}

func slotPtr(v uint64) *SlotIndex {
	s := SlotIndex(v)
	return &s
}

// BaseSlots returns the slot layout of the governance assets. The map is
// freshly allocated on every call.
func BaseSlots() map[Asset]SlotEntry {
	return map[Asset]SlotEntry{
		AssetStkAAVE: {Balance: 0, ExchangeRate: slotPtr(81)},
		AssetAAAVE:   {Balance: 52, Delegation: slotPtr(64)},
		AssetAAVE:    {Balance: 0},
		AssetGovCore: {Balance: 9},
	}
}

// SlotTable maps asset contract addresses to their slot entries. Keys are
// binary addresses, so lookups ignore the casing of the hex form.
type SlotTable map[ethereumCommon.Address]SlotEntry

// NewSlotTable binds per-asset slot entries to contract addresses. Assets
// without an address are skipped.
func NewSlotTable(addresses map[Asset]ethereumCommon.Address, slots map[Asset]SlotEntry) SlotTable {
	table := make(SlotTable, len(slots))
	for asset, entry := range slots {
		addr, ok := addresses[asset]
		if !ok {
			continue
		}
		table[addr] = entry
	}
	return table
}

// ParseSlotTable builds a table from hex address keys in any casing.
func ParseSlotTable(raw map[string]SlotEntry) (SlotTable, error) {
	table := make(SlotTable, len(raw))
	for k, entry := range raw {
		addr, err := common.ParseAddress(k)
		if err != nil {
			return nil, err
		}
		table[addr] = entry
	}
	return table, nil
}

func (t SlotTable) Lookup(addr ethereumCommon.Address) (SlotEntry, bool) {
	entry, ok := t[addr]
	return entry, ok
}
