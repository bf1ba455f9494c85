// govproof derives voting storage slots and fetches the storage proofs a
// cross-chain voting machine verifies against a snapshot block.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/colorfulnotion/govproof/common"
	"github.com/colorfulnotion/govproof/goverrors"
	log "github.com/colorfulnotion/govproof/log"
	"github.com/colorfulnotion/govproof/proof"
	"github.com/colorfulnotion/govproof/rpc"
	"github.com/colorfulnotion/govproof/slots"
	"github.com/colorfulnotion/govproof/slotspecs"
	"github.com/colorfulnotion/govproof/types"
	"github.com/colorfulnotion/govproof/voting"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

func main() {
	var cfg types.CommandConfig

	var rootCmd = &cobra.Command{
		Use:           "govproof",
		Short:         "Voting storage proofs for cross-chain governance",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(&cfg)
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.RPC, "rpc", "http://127.0.0.1:8545", "Execution node JSON-RPC endpoint")
	pf.StringVar(&cfg.Network, "network", "mainnet", "Slot spec: embedded network id or JSON file")
	pf.StringVar(&cfg.LogLevel, "log-level", "info", "Log level (trace, debug, info, warn, error, crit)")
	pf.BoolVar(&cfg.LogJson, "logjson", false, "Write logs as JSON")
	pf.StringVar(&cfg.Debug, "debug", "", "Comma separated log modules to enable, or \"all\"")

	var (
		baseSlot string
		asset    string
		delegate bool
	)
	var slotCmd = &cobra.Command{
		Use:   "slot",
		Short: "Derive a voting storage slot offline",
		RunE: func(cmd *cobra.Command, args []string) error {
			voter, err := common.ParseAddress(cfg.Voter)
			if err != nil {
				return err
			}
			base, err := resolveBaseSlot(&cfg, baseSlot, asset, delegate)
			if err != nil {
				return err
			}
			out := slotOutput{Voter: voter.Hex(), BaseSlot: base}
			if cfg.ChainID != "" {
				chainID, err := common.ParseUint64(cfg.ChainID)
				if err != nil {
					return err
				}
				out.ChainID = &chainID
				out.Slot = slots.TwoLevel(base, voter, chainID).Hex()
			} else {
				out.Slot = slots.SingleLevelKey(base, voter)
			}
			return printJSON(out)
		},
	}
	slotCmd.Flags().StringVar(&cfg.Voter, "voter", "", "Voter address")
	slotCmd.Flags().StringVar(&baseSlot, "slot", "", "Base slot index (decimal or hex)")
	slotCmd.Flags().StringVar(&asset, "asset", "", "Asset name resolved through the slot spec (AAVE, stkAAVE, aAAVE, \"Gov core\")")
	slotCmd.Flags().BoolVar(&delegate, "delegated", false, "Use the delegation slot of the delegation asset")
	slotCmd.Flags().StringVar(&cfg.ChainID, "chain-id", "", "Derive the two-level (voter, chain id) slot")
	slotCmd.MarkFlagRequired("voter")
	slotCmd.MarkFlagsMutuallyExclusive("slot", "asset")

	var votingCmd = &cobra.Command{
		Use:   "voting-proofs",
		Short: "Fetch one encoded storage proof per non-zero voting balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			voter, err := common.ParseAddress(cfg.Voter)
			if err != nil {
				return err
			}
			blockHash, err := common.ParseHash(cfg.BlockHash)
			if err != nil {
				return err
			}
			balances, err := readBalances(cfg.Balances)
			if err != nil {
				return err
			}
			return withProver(cmd.Context(), &cfg, func(ctx context.Context, p *voting.Prover, _ *slotspecs.SlotSpec) error {
				bundles, err := p.VotingProofs(ctx, voter, blockHash, balances)
				if err != nil {
					return err
				}
				return printJSON(bundles)
			})
		},
	}
	votingCmd.Flags().StringVar(&cfg.Voter, "voter", "", "Voter address")
	votingCmd.Flags().StringVar(&cfg.BlockHash, "block-hash", "", "Snapshot block hash")
	votingCmd.Flags().StringVar(&cfg.Balances, "balances", "", "JSON file with the balances to prove, \"-\" for stdin")
	votingCmd.Flags().IntVar(&cfg.Concurrency, "concurrency", 0, "Maximum proofs in flight (0 = unlimited)")
	votingCmd.MarkFlagRequired("voter")
	votingCmd.MarkFlagRequired("block-hash")
	votingCmd.MarkFlagRequired("balances")

	var representativeCmd = &cobra.Command{
		Use:   "representative-proof",
		Short: "Fetch the encoded proof of a voter's representative for a chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			voter, err := common.ParseAddress(cfg.Voter)
			if err != nil {
				return err
			}
			blockHash, err := common.ParseHash(cfg.BlockHash)
			if err != nil {
				return err
			}
			chainID, err := common.ParseUint64(cfg.ChainID)
			if err != nil {
				return err
			}
			return withProver(cmd.Context(), &cfg, func(ctx context.Context, p *voting.Prover, spec *slotspecs.SlotSpec) error {
				govCore, err := spec.GovernanceCoreAddress()
				if err != nil {
					return err
				}
				blob, err := p.RepresentativeProof(ctx, voter, blockHash, chainID, govCore)
				if err != nil {
					return err
				}
				return printJSON(proofOutput{Proof: blob})
			})
		},
	}
	representativeCmd.Flags().StringVar(&cfg.Voter, "voter", "", "Voter address")
	representativeCmd.Flags().StringVar(&cfg.BlockHash, "block-hash", "", "Snapshot block hash")
	representativeCmd.Flags().StringVar(&cfg.ChainID, "chain-id", "", "Chain id the representative votes on")
	representativeCmd.MarkFlagRequired("voter")
	representativeCmd.MarkFlagRequired("block-hash")
	representativeCmd.MarkFlagRequired("chain-id")

	var blockRLPCmd = &cobra.Command{
		Use:   "block-rlp",
		Short: "Encode a block header for on-chain block hash verification",
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := common.ParseUint64(cfg.BlockNumber)
			if err != nil {
				return err
			}
			layout, err := proof.ParseHeaderLayout(cfg.Layout)
			if err != nil {
				return err
			}
			return withProver(cmd.Context(), &cfg, func(ctx context.Context, p *voting.Prover, _ *slotspecs.SlotSpec) error {
				enc, err := p.HeaderRLP(ctx, number, layout)
				if err != nil {
					return err
				}
				return printJSON(headerOutput{Number: number, Layout: layout.String(), RLP: enc})
			})
		},
	}
	blockRLPCmd.Flags().StringVar(&cfg.BlockNumber, "block-number", "", "Block number (decimal or hex)")
	blockRLPCmd.Flags().StringVar(&cfg.Layout, "layout", "shanghai", "Header layout (london, shanghai)")
	blockRLPCmd.MarkFlagRequired("block-number")

	var decodeCmd = &cobra.Command{
		Use:   "decode-proof <hex>",
		Short: "Print the trie nodes of an encoded proof",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := hexutil.Decode(args[0])
			if err != nil {
				return fmt.Errorf("%w: %v", goverrors.ErrMalformedProofNode, err)
			}
			out, err := proof.Describe(blob)
			if err != nil {
				return err
			}
			fmt.Fprint(stdout, out)
			return nil
		},
	}

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("govproof %s (commit %s, built %s)\n", Version, common.BuildCommit(Commit), BuildTime)
		},
	}

	rootCmd.AddCommand(slotCmd, votingCmd, representativeCmd, blockRLPCmd, decodeCmd, versionCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if code := goverrors.GetErrorCodeWithName(err); code != "" {
			fmt.Fprintf(os.Stderr, "Error [%s]: %v\n", code, err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

func setupLogging(cfg *types.CommandConfig) error {
	if cfg.LogJson {
		if err := log.InitJSONLogger(os.Stderr, cfg.LogLevel); err != nil {
			return err
		}
	} else {
		log.InitLogger(cfg.LogLevel)
	}
	log.EnableModules(cfg.Debug)
	log.Debug(log.CLIModule, "config", "cfg", cfg.String())
	return nil
}

// withProver loads the slot spec, dials the node and hands a bound prover to fn.
func withProver(ctx context.Context, cfg *types.CommandConfig, fn func(context.Context, *voting.Prover, *slotspecs.SlotSpec) error) error {
	spec, err := slotspecs.ReadSpec(cfg.Network)
	if err != nil {
		return err
	}
	delegation, err := spec.DelegationAddress()
	if err != nil {
		return err
	}
	client, err := rpc.Dial(ctx, cfg.RPC)
	if err != nil {
		return err
	}
	defer client.Close()

	p := voting.NewProver(client, spec.Table(), delegation, voting.WithConcurrency(cfg.Concurrency))
	return fn(ctx, p, spec)
}

type slotOutput struct {
	Voter    string  `json:"voter"`
	BaseSlot uint64  `json:"baseSlot"`
	ChainID  *uint64 `json:"chainId,omitempty"`
	Slot     string  `json:"slot"`
}

type proofOutput struct {
	Proof hexutil.Bytes `json:"proof"`
}

type headerOutput struct {
	Number uint64        `json:"number"`
	Layout string        `json:"layout"`
	RLP    hexutil.Bytes `json:"rlp"`
}
