package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
)

// GasParameters bounds the resources an operation may consume. The gateway
// core only reads CallGasLimit and MaxFeePerGas for settlement math; the
// remaining bounds are forwarded untouched to the execution environment.
type GasParameters struct {
	CallGasLimit         *big.Int `json:"callGasLimit" validate:"required"`
	VerificationGasLimit *big.Int `json:"verificationGasLimit"`
	MaxFeePerGas         *big.Int `json:"maxFeePerGas" validate:"required"`
	MaxPriorityFeePerGas *big.Int `json:"maxPriorityFeePerGas"`
}

// Operation is the unit of authorized work submitted to a principal.
//
// AdditionalFields is an open extension record (paymaster input, factory
// dependencies, reserved protocol words) that the core carries but never
// interprets, so the validation and execution contracts stay stable as the
// authorization policy grows richer.
type Operation struct {
	Sender           common.Address  `json:"sender" validate:"required"`
	Nonce            *big.Int        `json:"nonce" validate:"required"`
	Target           common.Address  `json:"target"`
	Value            *big.Int        `json:"value"`
	CallData         []byte          `json:"callData"`
	Gas              GasParameters   `json:"gas"`
	AdditionalFields json.RawMessage `json:"additionalFields,omitempty"`
	Signature        []byte          `json:"signature,omitempty"`
}

// Validate checks the operation's required fields.
func (o *Operation) Validate() error {
	return validator.New().Struct(o)
}

// UnmarshalJSON unmarshals an operation, accepting numeric fields either as
// JSON numbers, decimal strings, or 0x-prefixed hex strings. Operation
// construction tooling in the wild emits all three forms.
func (o *Operation) UnmarshalJSON(data []byte) error {
	var raw struct {
		Sender           common.Address  `json:"sender"`
		Nonce            json.RawMessage `json:"nonce"`
		Target           common.Address  `json:"target"`
		Value            json.RawMessage `json:"value"`
		CallData         hexBytes        `json:"callData"`
		Gas              rawGas          `json:"gas"`
		AdditionalFields json.RawMessage `json:"additionalFields"`
		Signature        hexBytes        `json:"signature"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	nonce, err := parseQuantity(raw.Nonce)
	if err != nil {
		return fmt.Errorf("invalid nonce: %w", err)
	}
	value, err := parseQuantity(raw.Value)
	if err != nil {
		return fmt.Errorf("invalid value: %w", err)
	}
	gas, err := raw.Gas.toGasParameters()
	if err != nil {
		return err
	}

	o.Sender = raw.Sender
	o.Nonce = nonce
	o.Target = raw.Target
	o.Value = value
	o.CallData = raw.CallData
	o.Gas = gas
	o.AdditionalFields = raw.AdditionalFields
	o.Signature = raw.Signature

	return nil
}

type rawGas struct {
	CallGasLimit         json.RawMessage `json:"callGasLimit"`
	VerificationGasLimit json.RawMessage `json:"verificationGasLimit"`
	MaxFeePerGas         json.RawMessage `json:"maxFeePerGas"`
	MaxPriorityFeePerGas json.RawMessage `json:"maxPriorityFeePerGas"`
}

func (g rawGas) toGasParameters() (GasParameters, error) {
	var (
		out GasParameters
		err error
	)
	if out.CallGasLimit, err = parseQuantity(g.CallGasLimit); err != nil {
		return GasParameters{}, fmt.Errorf("invalid callGasLimit: %w", err)
	}
	if out.VerificationGasLimit, err = parseQuantity(g.VerificationGasLimit); err != nil {
		return GasParameters{}, fmt.Errorf("invalid verificationGasLimit: %w", err)
	}
	if out.MaxFeePerGas, err = parseQuantity(g.MaxFeePerGas); err != nil {
		return GasParameters{}, fmt.Errorf("invalid maxFeePerGas: %w", err)
	}
	if out.MaxPriorityFeePerGas, err = parseQuantity(g.MaxPriorityFeePerGas); err != nil {
		return GasParameters{}, fmt.Errorf("invalid maxPriorityFeePerGas: %w", err)
	}

	return out, nil
}

// hexBytes decodes JSON byte fields from either base64 (encoding/json's
// default for []byte) or 0x-prefixed hex strings.
type hexBytes []byte

func (h *hexBytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if strings.HasPrefix(s, "0x") {
		b, err := hexutil.Decode(s)
		if err != nil {
			return err
		}
		*h = b

		return nil
	}

	var b []byte
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	*h = b

	return nil
}

// parseQuantity reads a big integer from a JSON number, a decimal string, or
// a 0x-prefixed hex string. A missing or null field yields nil.
func parseQuantity(raw json.RawMessage) (*big.Int, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if strings.HasPrefix(s, "0x") {
			return hexutil.DecodeBig(s)
		}

		u, err := cast.ToUint64E(s)
		if err != nil {
			return nil, fmt.Errorf("not a decimal quantity: %q", s)
		}

		return new(big.Int).SetUint64(u), nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, fmt.Errorf("not a quantity: %s", raw)
	}

	out, ok := new(big.Int).SetString(n.String(), 10)
	if !ok {
		return nil, fmt.Errorf("not a quantity: %s", n)
	}

	return out, nil
}
