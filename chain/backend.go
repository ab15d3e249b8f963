// Package chain defines the gateway's boundary with the execution
// environment: native balance movement, target invocation, and the external
// nonce ledger. The gateway owns the calls across this boundary, never the
// storage behind it.
package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// CallMsg describes a target invocation.
type CallMsg struct {
	From  common.Address
	To    common.Address
	Value *big.Int
	Data  []byte
	Gas   uint64
}

// Backend is the execution environment a principal lives in.
type Backend interface {
	// BalanceOf returns the native balance of an address.
	BalanceOf(addr common.Address) *big.Int

	// Transfer moves native balance between two addresses.
	Transfer(ctx context.Context, from, to common.Address, amount *big.Int) error

	// Call invokes the message's target, forwarding value and data. A
	// revert surfaces as a *RevertError carrying the callee's raw failure
	// payload.
	Call(ctx context.Context, msg CallMsg) ([]byte, error)

	// SystemCall invokes a protocol-privileged target. Only reserved
	// system identities are reachable through this path.
	SystemCall(ctx context.Context, msg CallMsg) ([]byte, error)
}

// NonceLedger is the external nonce authority of the push protocol. The
// check-and-advance must be a single indivisible operation; the gateway
// relies on it as the sole replay-safety mechanism.
type NonceLedger interface {
	// IncrementNonceIfEquals advances the account's nonce only if it
	// currently equals expected, and fails otherwise.
	IncrementNonceIfEquals(ctx context.Context, account common.Address, expected *big.Int) error
}

// RevertError carries a callee's raw failure payload. The payload is
// propagated byte-for-byte; callers depend on inspecting the original
// failure reason.
type RevertError struct {
	Payload []byte
}

// NewRevertError creates a RevertError with the given payload.
func NewRevertError(payload []byte) *RevertError {
	return &RevertError{Payload: payload}
}

func (e *RevertError) Error() string {
	if len(e.Payload) == 0 {
		return "execution reverted"
	}

	return fmt.Sprintf("execution reverted: 0x%s", common.Bytes2Hex(e.Payload))
}

// NonceMismatchError is returned by a nonce ledger when the expected nonce
// does not match the current one.
type NonceMismatchError struct {
	Account  common.Address
	Expected *big.Int
	Current  *big.Int
}

func (e *NonceMismatchError) Error() string {
	return fmt.Sprintf("nonce mismatch for %s: expected %s, current %s", e.Account, e.Expected, e.Current)
}

// ErrInsufficientFunds is returned by Transfer when the sender's balance
// does not cover the amount.
var ErrInsufficientFunds = errors.New("insufficient funds for transfer")
