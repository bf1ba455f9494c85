package proof

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/xlab/treeprint"
)

// NodeKind classifies a Merkle-Patricia trie node by its shape.
type NodeKind string

const (
	KindBranch    NodeKind = "branch"
	KindExtension NodeKind = "extension"
	KindLeaf      NodeKind = "leaf"
	KindUnknown   NodeKind = "unknown"
)

// Classify inspects a decoded trie node. A branch has 17 items; a two-item
// node is a leaf or an extension depending on the hex-prefix flag of its path.
func Classify(node interface{}) NodeKind {
	items, ok := node.([]interface{})
	if !ok {
		return KindUnknown
	}
	switch len(items) {
	case 17:
		return KindBranch
	case 2:
		path, ok := items[0].([]byte)
		if !ok || len(path) == 0 {
			return KindUnknown
		}
		switch path[0] >> 4 {
		case 0, 1:
			return KindExtension
		case 2, 3:
			return KindLeaf
		}
	}
	return KindUnknown
}

// Describe renders an encoded proof as a tree, one branch per node.
func Describe(blob []byte) (string, error) {
	nodes, err := DecodeProof(blob)
	if err != nil {
		return "", err
	}
	tree := treeprint.NewWithRoot(fmt.Sprintf("proof (%d nodes, %d bytes)", len(nodes), len(blob)))
	for i, node := range nodes {
		kind := Classify(node)
		branch := tree.AddMetaBranch(kind, fmt.Sprintf("node %d", i))
		items, _ := node.([]interface{})
		switch kind {
		case KindBranch:
			for slot, child := range items[:16] {
				if b, ok := child.([]byte); ok && len(b) == 0 {
					continue
				}
				branch.AddMetaNode(fmt.Sprintf("%x", slot), itemString(child))
			}
			if v, ok := items[16].([]byte); ok && len(v) > 0 {
				branch.AddMetaNode("value", hexutil.Encode(v))
			}
		case KindExtension, KindLeaf:
			branch.AddMetaNode("path", itemString(items[0]))
			branch.AddMetaNode("value", itemString(items[1]))
		}
	}
	return tree.String(), nil
}

func itemString(item interface{}) string {
	switch v := item.(type) {
	case []byte:
		return hexutil.Encode(v)
	case []interface{}:
		return fmt.Sprintf("embedded %s", Classify(v))
	default:
		return fmt.Sprintf("%v", v)
	}
}
