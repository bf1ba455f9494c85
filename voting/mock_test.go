package voting

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/colorfulnotion/govproof/types"
	"github.com/ethereum/go-ethereum"
	ethereumCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
)

type proofRequest struct {
	Account ethereumCommon.Address
	Keys    []string
	Block   uint64
}

// mockProvider serves canned headers and proofs and records every request.
type mockProvider struct {
	mu sync.Mutex

	blocks  map[ethereumCommon.Hash]uint64
	headers map[uint64]*ethtypes.Header
	nodes   map[ethereumCommon.Address][]string
	delays  map[ethereumCommon.Address]time.Duration
	fail    map[ethereumCommon.Address]error
	// barrier, when set, holds every GetProof until that many calls are in flight
	barrier int

	requests     []proofRequest
	resolveCalls int
	inFlight     int
	maxInFlight  int
	canceled     int
}

func newMockProvider() *mockProvider {
	return &mockProvider{
		blocks:  make(map[ethereumCommon.Hash]uint64),
		headers: make(map[uint64]*ethtypes.Header),
		nodes:   make(map[ethereumCommon.Address][]string),
		delays:  make(map[ethereumCommon.Address]time.Duration),
		fail:    make(map[ethereumCommon.Address]error),
	}
}

// leafFor returns a one-node proof whose leaf value is the account address,
// so each bundle can be traced back to the account it was fetched for.
func leafFor(account ethereumCommon.Address) []string {
	leaf, err := rlp.EncodeToBytes([][]byte{{0x20}, account.Bytes()})
	if err != nil {
		panic(err)
	}
	return []string{hexutil.Encode(leaf)}
}

func (m *mockProvider) HeaderByHash(ctx context.Context, hash ethereumCommon.Hash) (*ethtypes.Header, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolveCalls++
	n, ok := m.blocks[hash]
	if !ok {
		return nil, ethereum.NotFound
	}
	return &ethtypes.Header{Number: new(big.Int).SetUint64(n)}, nil
}

func (m *mockProvider) HeaderByNumber(ctx context.Context, number *big.Int) (*ethtypes.Header, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.headers[number.Uint64()]
	if !ok {
		return nil, ethereum.NotFound
	}
	return h, nil
}

func (m *mockProvider) GetProof(ctx context.Context, account ethereumCommon.Address, keys []string, blockNumber uint64) (*types.AccountProof, error) {
	m.mu.Lock()
	m.requests = append(m.requests, proofRequest{account, keys, blockNumber})
	m.inFlight++
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
	delay := m.delays[account]
	failure := m.fail[account]
	barrier := m.barrier
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight--
		m.mu.Unlock()
	}()

	if barrier > 0 {
		deadline := time.After(2 * time.Second)
		for {
			m.mu.Lock()
			reached := m.maxInFlight >= barrier
			m.mu.Unlock()
			if reached {
				break
			}
			select {
			case <-deadline:
				return nil, context.DeadlineExceeded
			case <-time.After(time.Millisecond):
			}
		}
	}

	if delay > 0 {
		select {
		case <-ctx.Done():
			m.mu.Lock()
			m.canceled++
			m.mu.Unlock()
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	if failure != nil {
		return nil, failure
	}
	return &types.AccountProof{
		Address: account,
		StorageProof: []types.StorageResult{{
			Key:   keys[0],
			Proof: m.nodesFor(account),
		}},
	}, nil
}

func (m *mockProvider) nodesFor(account ethereumCommon.Address) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if nodes, ok := m.nodes[account]; ok {
		return nodes
	}
	return leafFor(account)
}

func (m *mockProvider) proofRequests() []proofRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]proofRequest(nil), m.requests...)
}
