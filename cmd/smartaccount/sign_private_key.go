package smartaccount

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	smartaccount "github.com/entrykit/smartaccount"
)

func newSignPrivateKeyCmd(operationPath *string, chainSelector *uint64) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign-raw-private-key",
		Short: "Sign an operation with a raw private key",
		Long:  `Configure a private key in a .env file (using the PRIVATE_KEY var) and sign an operation with it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load Operation
			op, err := loadOperation(*operationPath)
			if err != nil {
				fmt.Printf("Error loading operation: %s\n", err)
				return err
			}

			// Load Private Key
			pk, err := loadPrivateKey()
			if err != nil {
				fmt.Printf("Error loading private key: %s\n", err)
				return err
			}

			// Resolve the digest domain
			chainID, err := chainIDFromSelector(*chainSelector)
			if err != nil {
				return err
			}

			digester := smartaccount.StructuredDigester{ChainID: chainID}
			signer := smartaccount.NewPrivateKeySigner(pk)
			if err := smartaccount.SignOperation(&op, digester, common.Hash{}, signer); err != nil {
				fmt.Printf("Error signing operation: %s\n", err)
				return err
			}

			// Write the signed operation back to file
			return writeOperation(*operationPath, op)
		},
	}

	return cmd
}
