package rpc

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/colorfulnotion/govproof/goverrors"
	"github.com/colorfulnotion/govproof/types"
	"github.com/ethereum/go-ethereum"
	ethereumCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/require"
)

// ethService is served under the "eth" namespace by an in-process node.
type ethService struct {
	mu      sync.Mutex
	headers map[ethereumCommon.Hash]*ethtypes.Header
	proofs  map[string]*types.AccountProof // keyed by block numeral
	calls   []proofCall
}

type proofCall struct {
	Account ethereumCommon.Address
	Keys    []string
	Block   string
}

func (s *ethService) GetBlockByHash(hash ethereumCommon.Hash, full bool) (*ethtypes.Header, error) {
	return s.headers[hash], nil
}

func (s *ethService) GetBlockByNumber(number hexutil.Uint64, full bool) (*ethtypes.Header, error) {
	for _, h := range s.headers {
		if h.Number.Uint64() == uint64(number) {
			return h, nil
		}
	}
	return nil, nil
}

func (s *ethService) GetProof(account ethereumCommon.Address, keys []string, block string) (*types.AccountProof, error) {
	s.mu.Lock()
	s.calls = append(s.calls, proofCall{account, keys, block})
	s.mu.Unlock()
	p, ok := s.proofs[block]
	if !ok {
		return nil, errors.New("missing trie node")
	}
	return p, nil
}

func testHeader(number int64) *ethtypes.Header {
	return &ethtypes.Header{
		ParentHash: ethereumCommon.HexToHash("0x01"),
		Difficulty: big.NewInt(0),
		Number:     big.NewInt(number),
		GasLimit:   30_000_000,
		Time:       1_700_000_000,
		BaseFee:    big.NewInt(7),
	}
}

func newTestClient(t *testing.T, svc *ethService) *EVMClient {
	t.Helper()
	server := gethrpc.NewServer()
	require.NoError(t, server.RegisterName("eth", svc))
	t.Cleanup(server.Stop)
	client := NewEVMClient(gethrpc.DialInProc(server))
	t.Cleanup(client.Close)
	return client
}

func TestResolveBlockNumber(t *testing.T) {
	header := testHeader(100)
	svc := &ethService{headers: map[ethereumCommon.Hash]*ethtypes.Header{header.Hash(): header}}
	client := newTestClient(t, svc)

	n, err := ResolveBlockNumber(context.Background(), client, header.Hash())
	require.NoError(t, err)
	require.Equal(t, uint64(100), n)

	_, err = ResolveBlockNumber(context.Background(), client, ethereumCommon.HexToHash("0xbbbb"))
	require.ErrorIs(t, err, goverrors.ErrBlockNotFound)
}

func TestHeaderByNumber(t *testing.T) {
	header := testHeader(42)
	svc := &ethService{headers: map[ethereumCommon.Hash]*ethtypes.Header{header.Hash(): header}}
	client := newTestClient(t, svc)

	got, err := client.HeaderByNumber(context.Background(), big.NewInt(42))
	require.NoError(t, err)
	require.Equal(t, header.Hash(), got.Hash())

	_, err = client.HeaderByNumber(context.Background(), big.NewInt(43))
	require.True(t, errors.Is(err, ethereum.NotFound))
}

func TestFetchStorageProofSendsMinimalHexBlock(t *testing.T) {
	account := ethereumCommon.HexToAddress("0x7Fc66500c84A76Ad7e9c93437bFc5Ac33E2DDaE9")
	svc := &ethService{proofs: map[string]*types.AccountProof{
		"0x64": {
			Address: account,
			StorageProof: []types.StorageResult{{
				Key:   "0x1234",
				Value: (*hexutil.Big)(big.NewInt(5)),
				Proof: []string{"0xc0", "0xc180"},
			}},
		},
	}}
	client := newTestClient(t, svc)

	nodes, err := FetchStorageProof(context.Background(), client, account, "0x1234", 100)
	require.NoError(t, err)
	require.Equal(t, []string{"0xc0", "0xc180"}, nodes)

	require.Len(t, svc.calls, 1)
	require.Equal(t, "0x64", svc.calls[0].Block)
	require.Equal(t, []string{"0x1234"}, svc.calls[0].Keys)
	require.Equal(t, account, svc.calls[0].Account)
}

func TestFetchStorageProofUnavailable(t *testing.T) {
	account := ethereumCommon.HexToAddress("0x7Fc66500c84A76Ad7e9c93437bFc5Ac33E2DDaE9")
	svc := &ethService{proofs: map[string]*types.AccountProof{
		"0x1": {Address: account},
		"0x2": {Address: account, StorageProof: []types.StorageResult{{Key: "0x01"}}},
	}}
	client := newTestClient(t, svc)
	ctx := context.Background()

	// pruned state surfaces as an RPC error
	_, err := FetchStorageProof(ctx, client, account, "0x01", 3)
	require.ErrorIs(t, err, goverrors.ErrProofUnavailable)
	require.Contains(t, err.Error(), "missing trie node")

	_, err = FetchStorageProof(ctx, client, account, "0x01", 1)
	require.ErrorIs(t, err, goverrors.ErrProofUnavailable)

	_, err = FetchStorageProof(ctx, client, account, "0x01", 2)
	require.ErrorIs(t, err, goverrors.ErrProofUnavailable)
}
