package types

import (
	ethereumCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// BalanceForProof is one voting balance a proof is requested for.
type BalanceForProof struct {
	UnderlyingAsset      ethereumCommon.Address `json:"underlyingAsset"`
	Value                string                 `json:"value"`
	UserBalance          string                 `json:"userBalance"`
	IsWithDelegatedPower bool                   `json:"isWithDelegatedPower"`
}

// ProofBundle is the storage proof for one asset, RLP-encoded as a list of
// trie nodes from the storage root to the leaf.
type ProofBundle struct {
	UnderlyingAsset ethereumCommon.Address `json:"underlyingAsset"`
	Slot            uint64                 `json:"slot"`
	Proof           hexutil.Bytes          `json:"proof"`
}

// AccountProof is the eth_getProof response.
type AccountProof struct {
	Address      ethereumCommon.Address `json:"address"`
	AccountProof []string               `json:"accountProof"`
	Balance      *hexutil.Big           `json:"balance"`
	CodeHash     ethereumCommon.Hash    `json:"codeHash"`
	Nonce        hexutil.Uint64         `json:"nonce"`
	StorageHash  ethereumCommon.Hash    `json:"storageHash"`
	StorageProof []StorageResult        `json:"storageProof"`
}

// StorageResult is one requested storage key. Proof holds hex-encoded RLP
// trie nodes ordered root to leaf.
type StorageResult struct {
	Key   string       `json:"key"`
	Value *hexutil.Big `json:"value"`
	Proof []string     `json:"proof"`
}
