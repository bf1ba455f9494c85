package proof

import (
	"fmt"
	"strings"

	"github.com/colorfulnotion/govproof/goverrors"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
)

// HeaderLayout pins the field list of an encoded block header to one fork.
type HeaderLayout int

const (
	// LayoutLondon ends with baseFeePerGas.
	LayoutLondon HeaderLayout = iota + 1
	// LayoutShanghai appends withdrawalsRoot.
	LayoutShanghai
)

func (l HeaderLayout) String() string {
	switch l {
	case LayoutLondon:
		return "london"
	case LayoutShanghai:
		return "shanghai"
	default:
		return fmt.Sprintf("HeaderLayout(%d)", int(l))
	}
}

func ParseHeaderLayout(name string) (HeaderLayout, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "london":
		return LayoutLondon, nil
	case "shanghai", "":
		return LayoutShanghai, nil
	default:
		return 0, fmt.Errorf("%w: %q", goverrors.ErrUnsupportedHeaderLayout, name)
	}
}

// EncodeHeader RLP-encodes h with the field list of layout. Difficulty is
// always written as the empty string, so the encoding is only meaningful for
// post-merge blocks.
func EncodeHeader(h *ethtypes.Header, layout HeaderLayout) ([]byte, error) {
	if layout != LayoutLondon && layout != LayoutShanghai {
		return nil, fmt.Errorf("%w: %v", goverrors.ErrUnsupportedHeaderLayout, layout)
	}
	if h.Number == nil {
		return nil, fmt.Errorf("%w: number", goverrors.ErrMissingHeaderField)
	}
	if h.BaseFee == nil {
		return nil, fmt.Errorf("%w: baseFeePerGas (%v)", goverrors.ErrMissingHeaderField, layout)
	}
	fields := []interface{}{
		h.ParentHash,
		h.UncleHash,
		h.Coinbase,
		h.Root,
		h.TxHash,
		h.ReceiptHash,
		h.Bloom,
		[]byte{}, // difficulty
		h.Number,
		h.GasLimit,
		h.GasUsed,
		h.Time,
		h.Extra,
		h.MixDigest,
		h.Nonce,
		h.BaseFee,
	}
	if layout == LayoutShanghai {
		if h.WithdrawalsHash == nil {
			return nil, fmt.Errorf("%w: withdrawalsRoot (%v)", goverrors.ErrMissingHeaderField, layout)
		}
		fields = append(fields, *h.WithdrawalsHash)
	}
	return rlp.EncodeToBytes(fields)
}
