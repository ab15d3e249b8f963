package smartaccount

import (
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/joho/godotenv"
	chainsel "github.com/smartcontractkit/chain-selectors"

	"github.com/entrykit/smartaccount/types"
)

func loadPrivateKey() (*ecdsa.PrivateKey, error) {
	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		return nil, err
	}

	// Load PrivateKey
	pk := os.Getenv("PRIVATE_KEY")
	if pk == "" {
		return nil, errors.New("PRIVATE_KEY not found in .env file")
	}

	// Convert to ecdsa
	ecdsa, err := crypto.HexToECDSA(pk)
	if err != nil {
		return nil, err
	}

	return ecdsa, nil
}

func loadOperation(path string) (types.Operation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return types.Operation{}, err
	}

	var op types.Operation
	if err := json.Unmarshal(raw, &op); err != nil {
		return types.Operation{}, err
	}

	return op, nil
}

func writeOperation(path string, op types.Operation) error {
	raw, err := json.MarshalIndent(op, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, raw, 0600)
}

// chainIDFromSelector resolves a chain selector to the EVM chain ID that
// feeds the structured digest domain.
func chainIDFromSelector(selector uint64) (*big.Int, error) {
	chain, exists := chainsel.ChainBySelector(selector)
	if !exists {
		return nil, fmt.Errorf("chain not found for selector %d", selector)
	}

	return new(big.Int).SetUint64(chain.EvmChainID), nil
}
