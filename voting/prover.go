// Package voting assembles the storage proofs a cross-chain voting machine
// needs to count a voter's governance weight at a snapshot block.
package voting

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/colorfulnotion/govproof/common"
	"github.com/colorfulnotion/govproof/goverrors"
	log "github.com/colorfulnotion/govproof/log"
	"github.com/colorfulnotion/govproof/proof"
	"github.com/colorfulnotion/govproof/rpc"
	"github.com/colorfulnotion/govproof/slots"
	"github.com/colorfulnotion/govproof/types"
	"github.com/ethereum/go-ethereum"
	ethereumCommon "github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"
)

// Prover derives, fetches and encodes voting proofs against one provider.
type Prover struct {
	provider        rpc.Provider
	table           types.SlotTable
	delegationAsset ethereumCommon.Address
	concurrency     int
}

type Option func(*Prover)

// WithConcurrency caps the number of proof pipelines in flight. Zero or a
// negative value runs every pipeline at once.
func WithConcurrency(n int) Option {
	return func(p *Prover) {
		p.concurrency = n
	}
}

// NewProver binds a provider to a slot table. delegationAsset is the only
// asset whose delegated balances are read from the delegation slot.
func NewProver(provider rpc.Provider, table types.SlotTable, delegationAsset ethereumCommon.Address, opts ...Option) *Prover {
	p := &Prover{
		provider:        provider,
		table:           table,
		delegationAsset: delegationAsset,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// VotingProofs returns one bundle per non-zero balance, in input order. The
// block is resolved once so every proof is evidence for the same state. A
// failure in any pipeline fails the whole call.
func (p *Prover) VotingProofs(ctx context.Context, voter ethereumCommon.Address, blockHash ethereumCommon.Hash, balances []types.BalanceForProof) ([]types.ProofBundle, error) {
	blockNumber, err := rpc.ResolveBlockNumber(ctx, p.provider, blockHash)
	if err != nil {
		return nil, err
	}

	active := make([]types.BalanceForProof, 0, len(balances))
	for _, b := range balances {
		zero, err := common.IsZeroQuantity(b.Value)
		if err != nil {
			return nil, fmt.Errorf("balance of %s: %w", b.UnderlyingAsset, err)
		}
		if zero {
			log.Debug(log.VoteModule, "skipping zero balance", "asset", b.UnderlyingAsset)
			continue
		}
		active = append(active, b)
	}

	bundles := make([]types.ProofBundle, len(active))
	g, gctx := errgroup.WithContext(ctx)
	if p.concurrency > 0 {
		g.SetLimit(p.concurrency)
	}
	for i, b := range active {
		g.Go(func() error {
			bundle, err := p.balanceProof(gctx, voter, b, blockNumber)
			if err != nil {
				return err
			}
			bundles[i] = *bundle
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Warn(log.VoteModule, "voting proofs failed", "voter", voter, "block", blockNumber, "err", err)
		return nil, err
	}
	log.Info(log.VoteModule, "voting proofs ready", "voter", voter, "block", blockNumber, "bundles", len(bundles), "skipped", len(balances)-len(active))
	return bundles, nil
}

func (p *Prover) balanceProof(ctx context.Context, voter ethereumCommon.Address, b types.BalanceForProof, blockNumber uint64) (*types.ProofBundle, error) {
	baseSlot := slots.VoteBalanceSlot(b.UnderlyingAsset, b.IsWithDelegatedPower, p.delegationAsset, p.table)
	key := slots.SingleLevelKey(baseSlot, voter)

	nodes, err := rpc.FetchStorageProof(ctx, p.provider, b.UnderlyingAsset, key, blockNumber)
	if err != nil {
		return nil, err
	}
	blob, err := proof.EncodeProof(nodes)
	if err != nil {
		return nil, fmt.Errorf("asset %s: %w", b.UnderlyingAsset, err)
	}
	log.Debug(log.VoteModule, "balance proof", "asset", b.UnderlyingAsset, "slot", baseSlot, "key", key, "nodes", len(nodes))
	return &types.ProofBundle{
		UnderlyingAsset: b.UnderlyingAsset,
		Slot:            baseSlot,
		Proof:           blob,
	}, nil
}

// RepresentativeProof proves the voter's representative entry for chainID in
// the governance core, a mapping(address => mapping(uint256 => address)). Only
// the encoded proof is returned.
func (p *Prover) RepresentativeProof(ctx context.Context, voter ethereumCommon.Address, blockHash ethereumCommon.Hash, chainID uint64, govCore ethereumCommon.Address) ([]byte, error) {
	blockNumber, err := rpc.ResolveBlockNumber(ctx, p.provider, blockHash)
	if err != nil {
		return nil, err
	}
	baseSlot := slots.VoteBalanceSlot(govCore, false, p.delegationAsset, p.table)
	slot := slots.TwoLevel(baseSlot, voter, chainID)

	nodes, err := rpc.FetchStorageProof(ctx, p.provider, govCore, slot.Hex(), blockNumber)
	if err != nil {
		return nil, err
	}
	blob, err := proof.EncodeProof(nodes)
	if err != nil {
		return nil, fmt.Errorf("representative of %s: %w", voter, err)
	}
	log.Info(log.VoteModule, "representative proof ready", "voter", voter, "chain", chainID, "block", blockNumber, "slot", slot)
	return blob, nil
}

// HeaderRLP fetches the header at blockNumber and encodes it with layout.
func (p *Prover) HeaderRLP(ctx context.Context, blockNumber uint64, layout proof.HeaderLayout) ([]byte, error) {
	header, err := p.provider.HeaderByNumber(ctx, new(big.Int).SetUint64(blockNumber))
	if errors.Is(err, ethereum.NotFound) || (err == nil && header == nil) {
		return nil, fmt.Errorf("%w: number %d", goverrors.ErrBlockNotFound, blockNumber)
	}
	if err != nil {
		return nil, fmt.Errorf("header %d: %w", blockNumber, err)
	}
	enc, err := proof.EncodeHeader(header, layout)
	if err != nil {
		return nil, fmt.Errorf("header %d: %w", blockNumber, err)
	}
	return enc, nil
}
