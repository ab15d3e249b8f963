package smartaccount

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// UnauthorizedError is returned when a caller fails an entry point's
// caller-authority check. Check names which predicate failed.
type UnauthorizedError struct {
	Caller common.Address
	Check  string
}

// NewUnauthorizedError creates a new UnauthorizedError.
func NewUnauthorizedError(caller common.Address, check string) *UnauthorizedError {
	return &UnauthorizedError{Caller: caller, Check: check}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("caller %s is not authorized: failed %s check", e.Caller, e.Check)
}

// InvalidAuthorizationError is returned when the out-of-band submission
// path rejects an operation's signature. On the dispatcher-driven paths the
// same condition is a non-fatal validation result instead, because the
// dispatcher inspects result codes.
type InvalidAuthorizationError struct {
	Sender common.Address
	Nonce  *big.Int
}

// NewInvalidAuthorizationError creates a new InvalidAuthorizationError.
func NewInvalidAuthorizationError(sender common.Address, nonce *big.Int) *InvalidAuthorizationError {
	return &InvalidAuthorizationError{Sender: sender, Nonce: nonce}
}

func (e *InvalidAuthorizationError) Error() string {
	return fmt.Sprintf("operation for %s with nonce %s is not authorized by the controller", e.Sender, e.Nonce)
}

// InsufficientBalanceError is returned when the principal's balance does
// not cover the worst-case cost of an operation.
type InsufficientBalanceError struct {
	Required *big.Int
	Balance  *big.Int
}

// NewInsufficientBalanceError creates a new InsufficientBalanceError.
func NewInsufficientBalanceError(required, balance *big.Int) *InsufficientBalanceError {
	return &InsufficientBalanceError{Required: required, Balance: balance}
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: required %s, have %s", e.Required, e.Balance)
}

// SettlementFailedError is returned when pushing owed funds to the
// dispatcher fails.
type SettlementFailedError struct {
	Dispatcher common.Address
	Amount     *big.Int
	Err        error
}

// NewSettlementFailedError creates a new SettlementFailedError.
func NewSettlementFailedError(dispatcher common.Address, amount *big.Int, err error) *SettlementFailedError {
	return &SettlementFailedError{Dispatcher: dispatcher, Amount: amount, Err: err}
}

func (e *SettlementFailedError) Error() string {
	return fmt.Sprintf("failed to settle %s to dispatcher %s: %v", e.Amount, e.Dispatcher, e.Err)
}

func (e *SettlementFailedError) Unwrap() error {
	return e.Err
}

// ExecutionError is returned when the target invocation reverts. RawPayload
// is the callee's failure payload, byte-for-byte; it is never substituted
// with a generic reason.
type ExecutionError struct {
	RawPayload []byte
	Err        error
}

// NewExecutionError creates a new ExecutionError.
func NewExecutionError(rawPayload []byte, err error) *ExecutionError {
	return &ExecutionError{RawPayload: rawPayload, Err: err}
}

func (e *ExecutionError) Error() string {
	if len(e.RawPayload) > 0 {
		return fmt.Sprintf("execution failed: %v (raw revert data: 0x%s)", e.Err, common.Bytes2Hex(e.RawPayload))
	}

	return fmt.Sprintf("execution failed: %v", e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// NotImplementedError is returned by entry points that are part of the
// protocol surface but deliberately unimplemented in this scope. Callers
// may depend on the failure signal, so the hook must fail loudly rather
// than no-op.
type NotImplementedError struct {
	Hook string
}

// NewNotImplementedError creates a new NotImplementedError.
func NewNotImplementedError(hook string) *NotImplementedError {
	return &NotImplementedError{Hook: hook}
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("%s is not implemented", e.Hook)
}
