// Package cli exposes the governance command group: a small cobra/viper
// front end over core.GovernanceService, the in-process stand-in for the
// transaction dispatcher that would otherwise hand a proposal-init
// transaction to the governance validity predicate.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	core "governance-vp/core"
)

var (
	govStore   core.KVStore
	govService *core.GovernanceService
)

// currentEpoch returns the block epoch governance commands validate
// proposals against; overridable via SYNN_CURRENT_EPOCH for the CLI demo.
func currentEpoch() core.Epoch {
	return core.Epoch(viper.GetInt64("current_epoch"))
}

func ensureService() *core.GovernanceService {
	if govService != nil {
		return govService
	}
	govStore = core.CurrentStore()
	govService = core.NewGovernanceService(govStore, currentEpoch())
	return govService
}

var govCmd = &cobra.Command{
	Use:     "~gov",
	Short:   "Governance proposal operations",
	Aliases: []string{"gov", "governance"},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initGovConfig()
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed a fresh ledger with the governance counter and protocol parameters",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := core.GovParams{
			MaxProposalContentLength: uint64(viper.GetInt64("governance.max_proposal_content_length")),
			MaxProposalCodeSize:      uint64(viper.GetInt64("governance.max_proposal_code_size")),
			MinProposalPeriod:        uint64(viper.GetInt64("governance.min_proposal_period")),
			MinProposalFund:          uint64(viper.GetInt64("governance.min_proposal_fund")),
		}
		if err := core.SeedGenesis(core.CurrentStore(), params); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		fmt.Println("governance ledger seeded")
		return nil
	},
}

var proposeCmd = &cobra.Command{
	Use:   "propose",
	Short: "Submit a proposal-init transaction to the governance validity predicate",
	RunE: func(cmd *cobra.Command, args []string) error {
		author, _ := cmd.Flags().GetString("author")
		content, _ := cmd.Flags().GetString("content")
		funds, _ := cmd.Flags().GetUint64("funds")
		start, _ := cmd.Flags().GetUint64("start")
		end, _ := cmd.Flags().GetUint64("end")

		authorAddr, err := core.StringToAddress(author)
		if err != nil {
			return fmt.Errorf("--author: %w", err)
		}

		tx := core.ProposalInit{
			Author:     authorAddr,
			Content:    []byte(content),
			StartEpoch: start,
			EndEpoch:   end,
			Funds:      funds,
		}

		// The author must already hold at least --funds: SubmitProposal
		// escrows it into GOV_ADDRESS via AccountManager.Transfer, it does
		// not mint it. Use `~gov fund` to seed a demo account first.
		accepted, id, err := ensureService().SubmitProposal(tx, []core.Address{authorAddr})
		if err != nil {
			return fmt.Errorf("submit proposal: %w", err)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"id": id, "accepted": accepted})
	},
}

var fundCmd = &cobra.Command{
	Use:   "fund",
	Short: "Credit a demo account with native-currency balance (faucet, genesis-only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		address, _ := cmd.Flags().GetString("address")
		amount, _ := cmd.Flags().GetUint64("amount")

		addr, err := core.StringToAddress(address)
		if err != nil {
			return fmt.Errorf("--address: %w", err)
		}

		am := core.NewAccountManager(core.CurrentStore())
		if err := am.Fund(addr, amount); err != nil {
			return fmt.Errorf("fund: %w", err)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"address": addr.Hex(), "credited": amount})
	},
}

func initGovConfig() {
	viper.SetEnvPrefix("synn")
	viper.AutomaticEnv()

	if cfg := viper.GetString("config"); cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.SetConfigName("default")
		viper.AddConfigPath("cmd/config")
	}
	_ = viper.ReadInConfig()

	viper.SetDefault("current_epoch", 0)
	viper.SetDefault("governance.max_proposal_content_length", 64)
	viper.SetDefault("governance.max_proposal_code_size", 128)
	viper.SetDefault("governance.min_proposal_period", 3)
	viper.SetDefault("governance.min_proposal_fund", 100)
}

func init() {
	proposeCmd.Flags().String("author", "", "hex-encoded author address (40 hex chars, optional 0x prefix)")
	proposeCmd.Flags().String("content", "", "proposal content")
	proposeCmd.Flags().Uint64("funds", 0, "funds escrowed into GOV_ADDRESS")
	proposeCmd.Flags().Uint64("start", 0, "start epoch")
	proposeCmd.Flags().Uint64("end", 0, "end epoch")

	fundCmd.Flags().String("address", "", "hex-encoded account address to credit (40 hex chars, optional 0x prefix)")
	fundCmd.Flags().Uint64("amount", 0, "amount to credit")

	govCmd.AddCommand(seedCmd)
	govCmd.AddCommand(proposeCmd)
	govCmd.AddCommand(fundCmd)
}

// NewGovernanceCommand returns the governance command tree for the root CLI.
func NewGovernanceCommand() *cobra.Command { return govCmd }
