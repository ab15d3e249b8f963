package smartaccount

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	smartaccount "github.com/entrykit/smartaccount"
	"github.com/entrykit/smartaccount/chain"
	"github.com/entrykit/smartaccount/gateway/push"
	"github.com/entrykit/smartaccount/types"
)

func newSubmitCmd(operationPath *string, chainSelector *uint64) *cobra.Command {
	var (
		controllerHex string
		dispatcherHex string
		deployerHex   string
	)

	cmd := &cobra.Command{
		Use:   "submit-dry-run",
		Short: "Run a signed operation through the out-of-band submission path against a simulated backend",
		Long: `Validates and executes the operation exactly as a principal would,
but against an in-memory backend funded with the operation's worst-case
cost. Useful for checking a signature and nonce before broadcasting.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := loadOperation(*operationPath)
			if err != nil {
				fmt.Printf("Error loading operation: %s\n", err)
				return err
			}
			if err := op.Validate(); err != nil {
				fmt.Printf("Error validating operation: %s\n", err)
				return err
			}

			chainID, err := chainIDFromSelector(*chainSelector)
			if err != nil {
				return err
			}

			if controllerHex == "" {
				return errors.New("controller address is required")
			}

			backend := chain.NewSimBackend()
			fund(backend, op)
			if err := seedNonce(cmd.Context(), backend, op); err != nil {
				return err
			}

			account := smartaccount.NewAccount(op.Sender, common.HexToAddress(controllerHex))
			gw := push.NewGateway(account, push.Config{
				Dispatcher: common.HexToAddress(dispatcherHex),
				Deployer:   common.HexToAddress(deployerHex),
				ChainID:    chainID,
			}, backend, backend)

			ret, err := gw.SubmitExternally(cmd.Context(), op)
			if err != nil {
				fmt.Printf("Error submitting operation: %s\n", err)
				return err
			}

			fmt.Printf("Operation accepted, returned 0x%x\n", ret)

			return nil
		},
	}

	cmd.Flags().StringVar(&controllerHex, "controller", "", "Controller address the signature must recover to")
	cmd.Flags().StringVar(&dispatcherHex, "dispatcher", "", "Dispatcher address the simulated principal trusts")
	cmd.Flags().StringVar(&deployerHex, "deployer", "", "Reserved deployer address routed through the system call path")

	return cmd
}

// seedNonce advances the fresh backend's nonce ledger up to the
// operation's nonce so the replay check reflects only the submission under
// test.
func seedNonce(ctx context.Context, backend *chain.SimBackend, op types.Operation) error {
	if op.Nonce == nil {
		return nil
	}
	for i := new(big.Int); i.Cmp(op.Nonce) < 0; i.Add(i, big.NewInt(1)) {
		if err := backend.IncrementNonceIfEquals(ctx, op.Sender, i); err != nil {
			return err
		}
	}

	return nil
}

// fund gives the simulated principal exactly the worst-case cost of the
// operation so the balance check passes.
func fund(backend *chain.SimBackend, op types.Operation) {
	required := new(big.Int)
	if op.Gas.CallGasLimit != nil && op.Gas.MaxFeePerGas != nil {
		required.Mul(op.Gas.CallGasLimit, op.Gas.MaxFeePerGas)
	}
	if op.Value != nil {
		required.Add(required, op.Value)
	}
	backend.SetBalance(op.Sender, required)
}
