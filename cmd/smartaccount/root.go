package smartaccount

import (
	"github.com/spf13/cobra"
)

func BuildSmartAccountCmd() *cobra.Command {
	var (
		operationPath string
		chainSelector uint64
	)

	cmd := cobra.Command{
		Use:   "smartaccount",
		Short: "Sign and submit smart account operations",
		Long:  ``,
	}

	cmd.PersistentFlags().StringVar(&operationPath, "operation", "", "Absolute file path containing the operation to be submitted")
	cmd.PersistentFlags().Uint64Var(&chainSelector, "selector", 0, "Chain selector identifying the chain the operation is bound to")

	cmd.AddCommand(newDigestCmd(&operationPath, &chainSelector))
	cmd.AddCommand(newSignPrivateKeyCmd(&operationPath, &chainSelector))
	cmd.AddCommand(newSubmitCmd(&operationPath, &chainSelector))

	return &cmd
}
