package rpc

import (
	"context"
	"errors"
	"fmt"

	"github.com/colorfulnotion/govproof/goverrors"
	log "github.com/colorfulnotion/govproof/log"
	"github.com/ethereum/go-ethereum"
	ethereumCommon "github.com/ethereum/go-ethereum/common"
)

// ResolveBlockNumber maps a block hash to its height.
func ResolveBlockNumber(ctx context.Context, p Provider, blockHash ethereumCommon.Hash) (uint64, error) {
	header, err := p.HeaderByHash(ctx, blockHash)
	if errors.Is(err, ethereum.NotFound) {
		return 0, fmt.Errorf("%w: %s", goverrors.ErrBlockNotFound, blockHash)
	}
	if err != nil {
		return 0, fmt.Errorf("resolve block %s: %w", blockHash, err)
	}
	if header == nil || header.Number == nil {
		return 0, fmt.Errorf("%w: %s", goverrors.ErrBlockNotFound, blockHash)
	}
	log.Debug(log.RPCModule, "resolved block", "hash", blockHash, "number", header.Number)
	return header.Number.Uint64(), nil
}

// FetchStorageProof requests the proof of a single storage key and returns
// its trie nodes, root first.
func FetchStorageProof(ctx context.Context, p Provider, account ethereumCommon.Address, key string, blockNumber uint64) ([]string, error) {
	res, err := p.GetProof(ctx, account, []string{key}, blockNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: account %s key %s block %d: %w", goverrors.ErrProofUnavailable, account, key, blockNumber, err)
	}
	if res == nil || len(res.StorageProof) == 0 {
		return nil, fmt.Errorf("%w: account %s key %s block %d: no storage entry", goverrors.ErrProofUnavailable, account, key, blockNumber)
	}
	nodes := res.StorageProof[0].Proof
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: account %s key %s block %d: empty node list", goverrors.ErrProofUnavailable, account, key, blockNumber)
	}
	log.Debug(log.ProofModule, "fetched storage proof", "account", account, "key", key, "block", blockNumber, "nodes", len(nodes))
	return nodes, nil
}
