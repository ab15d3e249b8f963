package smartaccount

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	smartaccount "github.com/entrykit/smartaccount"
)

func newDigestCmd(operationPath *string, chainSelector *uint64) *cobra.Command {
	return &cobra.Command{
		Use:   "digest",
		Short: "Print the structured signing digest of an operation",
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := loadOperation(*operationPath)
			if err != nil {
				fmt.Printf("Error loading operation: %s\n", err)
				return err
			}

			chainID, err := chainIDFromSelector(*chainSelector)
			if err != nil {
				return err
			}

			digester := smartaccount.StructuredDigester{ChainID: chainID}
			digest, err := digester.Digest(op, common.Hash{})
			if err != nil {
				fmt.Printf("Error computing digest: %s\n", err)
				return err
			}

			fmt.Println(digest.Hex())

			return nil
		},
	}
}
