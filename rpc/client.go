package rpc

import (
	"context"
	"fmt"
	"math/big"

	"github.com/colorfulnotion/govproof/common"
	log "github.com/colorfulnotion/govproof/log"
	"github.com/colorfulnotion/govproof/types"
	"github.com/ethereum/go-ethereum"
	ethereumCommon "github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

// Provider is the subset of an execution node the proof pipeline reads from.
type Provider interface {
	// HeaderByHash returns ethereum.NotFound when the node does not know the hash.
	HeaderByHash(ctx context.Context, hash ethereumCommon.Hash) (*ethtypes.Header, error)
	// HeaderByNumber returns ethereum.NotFound for unknown heights.
	HeaderByNumber(ctx context.Context, number *big.Int) (*ethtypes.Header, error)
	// GetProof calls eth_getProof for account and keys at blockNumber.
	GetProof(ctx context.Context, account ethereumCommon.Address, keys []string, blockNumber uint64) (*types.AccountProof, error)
}

// EVMClient talks to an Ethereum JSON-RPC endpoint.
type EVMClient struct {
	rpc *gethrpc.Client
	eth *ethclient.Client
}

// NewEVMClient creates a new EVM RPC client
func NewEVMClient(client *gethrpc.Client) *EVMClient {
	return &EVMClient{
		rpc: client,
		eth: ethclient.NewClient(client),
	}
}

// Dial connects to an http(s), ws(s) or IPC endpoint.
func Dial(ctx context.Context, url string) (*EVMClient, error) {
	client, err := gethrpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	log.Debug(log.RPCModule, "connected", "url", url)
	return NewEVMClient(client), nil
}

func (c *EVMClient) Close() {
	c.rpc.Close()
}

// HeaderByHash fetches a block header by hash from remote node
func (c *EVMClient) HeaderByHash(ctx context.Context, hash ethereumCommon.Hash) (*ethtypes.Header, error) {
	header, err := c.eth.HeaderByHash(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("eth_getBlockByHash RPC failed: %w", err)
	}
	return header, nil
}

// HeaderByNumber fetches a block header by number from remote node
func (c *EVMClient) HeaderByNumber(ctx context.Context, number *big.Int) (*ethtypes.Header, error) {
	header, err := c.eth.HeaderByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("eth_getBlockByNumber RPC failed: %w", err)
	}
	return header, nil
}

// GetProof fetches account and storage proofs. The block number is sent as a
// minimal hex numeral.
func (c *EVMClient) GetProof(ctx context.Context, account ethereumCommon.Address, keys []string, blockNumber uint64) (*types.AccountProof, error) {
	var result *types.AccountProof
	err := c.rpc.CallContext(ctx, &result, "eth_getProof", account, keys, common.MinimalHex(blockNumber))
	if err != nil {
		return nil, fmt.Errorf("eth_getProof RPC failed: %w", err)
	}
	if result == nil {
		return nil, fmt.Errorf("eth_getProof returned null: %w", ethereum.NotFound)
	}
	log.Trace(log.RPCModule, "eth_getProof", "account", account, "keys", keys, "block", blockNumber, "entries", len(result.StorageProof))
	return result, nil
}
