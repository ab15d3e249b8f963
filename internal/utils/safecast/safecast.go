// Package safecast implements narrowing conversions that fail on range
// violations instead of truncating.
package safecast

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// AddressBits is the width of an EVM address in bits.
const AddressBits = common.AddressLength * 8

// CastOverflowError is returned when a value does not fit the requested
// narrower type.
type CastOverflowError struct {
	Value string
	Type  string
}

// NewCastOverflowError creates a new CastOverflowError.
func NewCastOverflowError(value fmt.Stringer, typ string) *CastOverflowError {
	return &CastOverflowError{Value: value.String(), Type: typ}
}

func (e *CastOverflowError) Error() string {
	return fmt.Sprintf("value %s overflows %s", e.Value, e.Type)
}

// BigToAddress narrows a 256-bit word to an address. Values wider than 160
// bits are rejected, never truncated.
func BigToAddress(v *big.Int) (common.Address, error) {
	if v == nil {
		return common.Address{}, nil
	}
	if v.Sign() < 0 || v.BitLen() > AddressBits {
		return common.Address{}, NewCastOverflowError(v, "address")
	}

	return common.BigToAddress(v), nil
}

// BigToUint64 narrows a big integer to a uint64, rejecting out-of-range
// values.
func BigToUint64(v *big.Int) (uint64, error) {
	if v == nil {
		return 0, nil
	}
	if !v.IsUint64() {
		return 0, NewCastOverflowError(v, "uint64")
	}

	return v.Uint64(), nil
}
