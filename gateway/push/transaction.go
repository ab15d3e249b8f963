package push

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/entrykit/smartaccount/internal/utils/safecast"
	"github.com/entrykit/smartaccount/types"
)

// Transaction is the push protocol's outer wire representation of an
// operation. Address-sized fields travel as 256-bit words; converting to
// the core representation narrows them with explicit range checks, never
// silent truncation.
type Transaction struct {
	TxType               *big.Int    `json:"txType"`
	From                 *big.Int    `json:"from"`
	To                   *big.Int    `json:"to"`
	GasLimit             *big.Int    `json:"gasLimit"`
	MaxFeePerGas         *big.Int    `json:"maxFeePerGas"`
	MaxPriorityFeePerGas *big.Int    `json:"maxPriorityFeePerGas"`
	Paymaster            *big.Int    `json:"paymaster"`
	Nonce                *big.Int    `json:"nonce"`
	Value                *big.Int    `json:"value"`
	Reserved             [4]*big.Int `json:"reserved"`
	Data                 []byte      `json:"data"`
	Signature            []byte      `json:"signature"`
	FactoryDeps          [][]byte    `json:"factoryDeps"`
	PaymasterInput       []byte      `json:"paymasterInput"`
	ReservedDynamic      []byte      `json:"reservedDynamic"`
}

// extensionFields is the opaque pass-through record attached to the core
// operation. The gateway carries it into the digest but never interprets
// it.
type extensionFields struct {
	Paymaster       *big.Int        `json:"paymaster,omitempty"`
	PaymasterInput  hexutil.Bytes   `json:"paymasterInput,omitempty"`
	FactoryDeps     []hexutil.Bytes `json:"factoryDeps,omitempty"`
	Reserved        [4]*big.Int     `json:"reserved"`
	ReservedDynamic hexutil.Bytes   `json:"reservedDynamic,omitempty"`
}

// ToOperation narrows the wire transaction into the core operation
// representation. A from or to value wider than an address is a
// CastOverflowError.
func (t Transaction) ToOperation() (types.Operation, error) {
	sender, err := safecast.BigToAddress(t.From)
	if err != nil {
		return types.Operation{}, fmt.Errorf("invalid from: %w", err)
	}

	target, err := safecast.BigToAddress(t.To)
	if err != nil {
		return types.Operation{}, fmt.Errorf("invalid to: %w", err)
	}

	deps := make([]hexutil.Bytes, 0, len(t.FactoryDeps))
	for _, dep := range t.FactoryDeps {
		deps = append(deps, dep)
	}

	extensions, err := json.Marshal(extensionFields{
		Paymaster:       t.Paymaster,
		PaymasterInput:  t.PaymasterInput,
		FactoryDeps:     deps,
		Reserved:        t.Reserved,
		ReservedDynamic: t.ReservedDynamic,
	})
	if err != nil {
		return types.Operation{}, err
	}

	return types.Operation{
		Sender:   sender,
		Nonce:    t.Nonce,
		Target:   target,
		Value:    t.Value,
		CallData: t.Data,
		Gas: types.GasParameters{
			CallGasLimit:         t.GasLimit,
			MaxFeePerGas:         t.MaxFeePerGas,
			MaxPriorityFeePerGas: t.MaxPriorityFeePerGas,
		},
		AdditionalFields: extensions,
		Signature:        t.Signature,
	}, nil
}
