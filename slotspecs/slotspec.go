// Package slotspecs holds the per-network asset addresses and storage layouts
// the prover reads from.
package slotspecs

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/colorfulnotion/govproof/goverrors"
	log "github.com/colorfulnotion/govproof/log"
	"github.com/colorfulnotion/govproof/types"
	ethereumCommon "github.com/ethereum/go-ethereum/common"
)

//go:embed *.json
var configFS embed.FS

var networkFile = map[string]string{
	"mainnet": "mainnet.json",
}

// Networks lists the embedded network ids.
func Networks() []string {
	ids := make([]string, 0, len(networkFile))
	for id := range networkFile {
		ids = append(ids, id)
	}
	return ids
}

type SlotSpec struct {
	ID              string                                 `json:"id"`
	ChainID         uint64                                 `json:"chain_id"`
	Assets          map[types.Asset]ethereumCommon.Address `json:"assets"`
	DelegationAsset types.Asset                            `json:"delegation_asset"`
	GovernanceCore  types.Asset                            `json:"governance_core"`
	Slots           map[types.Asset]types.SlotEntry        `json:"slots"`
}

// ReadSpec loads an embedded network by id, or a spec file when id is a path.
func ReadSpec(id string) (*SlotSpec, error) {
	var (
		data []byte
		err  error
	)
	if path, ok := networkFile[id]; ok {
		data, err = configFS.ReadFile(path)
		if err != nil {
			return nil, err
		}
	} else {
		data, err = os.ReadFile(id)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", goverrors.ErrUnknownNetwork, id)
		}
		if err != nil {
			return nil, err
		}
	}
	var spec SlotSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("slot spec %s: %w", id, err)
	}
	if spec.Slots == nil {
		log.Warn(log.SpecModule, "slot spec has no slot table, using built-in layout", "id", id)
		spec.Slots = types.BaseSlots()
	}
	log.Debug(log.SpecModule, "slot spec loaded", "id", spec.ID, "chain", spec.ChainID, "assets", len(spec.Assets))
	return &spec, nil
}

// Address resolves an asset to its contract address on this network.
func (s *SlotSpec) Address(asset types.Asset) (ethereumCommon.Address, error) {
	addr, ok := s.Assets[asset]
	if !ok {
		return ethereumCommon.Address{}, fmt.Errorf("%w: %v not deployed on %s", goverrors.ErrUnknownAsset, asset, s.ID)
	}
	return addr, nil
}

// Table binds the slot entries to the contract addresses of this network.
func (s *SlotSpec) Table() types.SlotTable {
	return types.NewSlotTable(s.Assets, s.Slots)
}

func (s *SlotSpec) DelegationAddress() (ethereumCommon.Address, error) {
	return s.Address(s.DelegationAsset)
}

func (s *SlotSpec) GovernanceCoreAddress() (ethereumCommon.Address, error) {
	return s.Address(s.GovernanceCore)
}
