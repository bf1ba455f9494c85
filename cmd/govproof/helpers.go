package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/colorfulnotion/govproof/common"
	log "github.com/colorfulnotion/govproof/log"
	"github.com/colorfulnotion/govproof/slots"
	"github.com/colorfulnotion/govproof/slotspecs"
	"github.com/colorfulnotion/govproof/types"
)

var stdout io.Writer = os.Stdout

func printJSON(v interface{}) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// resolveBaseSlot returns the explicit base slot, or looks the asset up in
// the configured slot spec.
func resolveBaseSlot(cfg *types.CommandConfig, baseSlot, assetName string, delegated bool) (uint64, error) {
	if assetName == "" {
		if baseSlot == "" {
			return 0, fmt.Errorf("either --slot or --asset is required")
		}
		return common.ParseUint64(baseSlot)
	}
	asset, err := types.ParseAsset(assetName)
	if err != nil {
		return 0, err
	}
	spec, err := slotspecs.ReadSpec(cfg.Network)
	if err != nil {
		return 0, err
	}
	addr, err := spec.Address(asset)
	if err != nil {
		return 0, err
	}
	delegation, err := spec.DelegationAddress()
	if err != nil {
		return 0, err
	}
	base := slots.VoteBalanceSlot(addr, delegated, delegation, spec.Table())
	log.Debug(log.CLIModule, "resolved base slot", "asset", asset, "address", addr, "slot", base)
	return base, nil
}

// readBalances reads a JSON array of balances from path, or stdin for "-".
func readBalances(path string) ([]types.BalanceForProof, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read balances: %w", err)
	}
	var balances []types.BalanceForProof
	if err := json.Unmarshal(data, &balances); err != nil {
		return nil, fmt.Errorf("decode balances %s: %w", path, err)
	}
	return balances, nil
}
