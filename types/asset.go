package types

import (
	"fmt"
	"strings"

	"github.com/colorfulnotion/govproof/goverrors"
)

// Asset identifies a governance-relevant token kind.
type Asset uint8

const (
	AssetAAVE    Asset = iota // governance token
	AssetStkAAVE              // staked wrapper
	AssetAAAVE                // interest-bearing wrapper, carries delegation
	AssetGovCore              // governance core contract
)

var assetNames = [...]string{
	AssetAAVE:    "AAVE",
	AssetStkAAVE: "stkAAVE",
	AssetAAAVE:   "aAAVE",
	AssetGovCore: "Gov core",
}

// Assets lists every asset in declaration order.
func Assets() []Asset {
	return []Asset{AssetAAVE, AssetStkAAVE, AssetAAAVE, AssetGovCore}
}

func (a Asset) String() string {
	if int(a) < len(assetNames) {
		return assetNames[a]
	}
	return fmt.Sprintf("Asset(%d)", uint8(a))
}

// ParseAsset resolves an asset by name, ignoring case.
func ParseAsset(name string) (Asset, error) {
	name = strings.TrimSpace(name)
	for i, n := range assetNames {
		if strings.EqualFold(n, name) {
			return Asset(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", goverrors.ErrUnknownAsset, name)
}

func (a Asset) MarshalText() ([]byte, error) {
	if int(a) >= len(assetNames) {
		return nil, fmt.Errorf("%w: %d", goverrors.ErrUnknownAsset, uint8(a))
	}
	return []byte(assetNames[a]), nil
}

func (a *Asset) UnmarshalText(text []byte) error {
	parsed, err := ParseAsset(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
