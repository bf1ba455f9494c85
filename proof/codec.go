// Package proof re-encodes Merkle-Patricia proofs into the single RLP blob a
// verifier contract parses.
package proof

import (
	"fmt"

	"github.com/colorfulnotion/govproof/goverrors"
	"github.com/colorfulnotion/govproof/log"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"
)

// decodeNode turns one hex-encoded trie node into its RLP structure: nested
// []interface{} for lists and []byte for strings.
func decodeNode(i int, node string) (interface{}, error) {
	raw, err := hexutil.Decode(node)
	if err != nil {
		return nil, fmt.Errorf("%w: node %d: %v", goverrors.ErrMalformedProofNode, i, err)
	}
	var decoded interface{}
	if err := rlp.DecodeBytes(raw, &decoded); err != nil {
		return nil, fmt.Errorf("%w: node %d: %v", goverrors.ErrMalformedProofNode, i, err)
	}
	return decoded, nil
}

// EncodeProof decodes every node and RLP-encodes them as one list, keeping
// the root-to-leaf order.
func EncodeProof(nodes []string) ([]byte, error) {
	decoded := make([]interface{}, len(nodes))
	for i, node := range nodes {
		d, err := decodeNode(i, node)
		if err != nil {
			return nil, err
		}
		decoded[i] = d
	}
	blob, err := EncodeNodes(decoded)
	if err != nil {
		return nil, err
	}
	log.Trace(log.ProofModule, "encoded proof", "nodes", len(nodes), "bytes", len(blob))
	return blob, nil
}

// EncodeNodes RLP-encodes already decoded trie nodes as a list.
func EncodeNodes(nodes []interface{}) ([]byte, error) {
	blob, err := rlp.EncodeToBytes(nodes)
	if err != nil {
		return nil, fmt.Errorf("encode proof list: %w", err)
	}
	return blob, nil
}

// DecodeProof splits an encoded proof back into its decoded nodes.
func DecodeProof(blob []byte) ([]interface{}, error) {
	var nodes []interface{}
	if err := rlp.DecodeBytes(blob, &nodes); err != nil {
		return nil, fmt.Errorf("%w: proof list: %v", goverrors.ErrMalformedProofNode, err)
	}
	return nodes, nil
}
