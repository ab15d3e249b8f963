// Package push implements the push-model gateway: a protocol-level
// dispatcher calls validate then execute, and the principal itself pushes
// payment to the dispatcher. An out-of-band submission path bypasses the
// dispatcher entirely.
package push

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	smartaccount "github.com/entrykit/smartaccount"
	"github.com/entrykit/smartaccount/chain"
	"github.com/entrykit/smartaccount/gateway"
	"github.com/entrykit/smartaccount/types"
)

// Gateway is the push-model principal surface.
type Gateway struct {
	account   *smartaccount.Account
	guard     *smartaccount.CallerGuard
	validator *smartaccount.SignatureValidator
	executor  *smartaccount.CallExecutor
	backend   chain.Backend
	nonces    chain.NonceLedger
}

var _ gateway.Gateway = (*Gateway)(nil)

// Config carries the protocol-reserved identities and parameters the push
// gateway operates under.
type Config struct {
	// Dispatcher is the protocol-reserved dispatcher address. Unlike the
	// pull model it is fixed by the protocol, not configurable per
	// principal.
	Dispatcher common.Address

	// Deployer is the reserved system identity whose invocations must be
	// routed through the privileged system-call path.
	Deployer common.Address

	// ChainID feeds the structured digest's domain.
	ChainID *big.Int
}

// NewGateway creates a push gateway for the given principal.
func NewGateway(account *smartaccount.Account, cfg Config, backend chain.Backend, nonces chain.NonceLedger) *Gateway {
	return &Gateway{
		account:   account,
		guard:     smartaccount.NewCallerGuard(cfg.Dispatcher),
		validator: smartaccount.NewSignatureValidator(smartaccount.StructuredDigester{ChainID: cfg.ChainID}),
		executor:  smartaccount.NewCallExecutor(backend, cfg.Deployer),
		backend:   backend,
		nonces:    nonces,
	}
}

// Address returns the principal's address.
func (g *Gateway) Address() common.Address {
	return g.account.Address()
}

// Controller returns the principal's controlling key.
func (g *Gateway) Controller() common.Address {
	return g.account.Controller()
}

// Dispatcher returns the protocol-reserved dispatcher identity.
func (g *Gateway) Dispatcher() common.Address {
	return g.guard.Dispatcher()
}

// TransferController rotates the controlling key.
func (g *Gateway) TransferController(caller, next common.Address) error {
	return g.account.TransferController(caller, next)
}

// Validate runs the push validation sequence: advance the nonce through the
// external ledger, check the balance covers the worst-case cost, then check
// the signature over the structured digest. Only the dispatcher may invoke
// it.
//
// A rejected signature is a result for the dispatcher to inspect via
// Magic(); a failed nonce advance or an insufficient balance aborts
// validation outright.
func (g *Gateway) Validate(ctx context.Context, caller common.Address, op types.Operation) (types.ValidationResult, error) {
	if err := g.guard.RequireDispatcher(caller); err != nil {
		return types.ResultRejected, err
	}

	return g.validate(ctx, op)
}

// Execute performs the operation's target invocation. The dispatcher or the
// controller may invoke it; a call targeting the reserved deployer identity
// is routed through the system-invocation path.
func (g *Gateway) Execute(ctx context.Context, caller common.Address, op types.Operation) ([]byte, error) {
	if err := g.guard.RequireDispatcherOrController(caller, g.account.Controller()); err != nil {
		return nil, err
	}

	return g.executor.ExecuteCall(ctx, g.account.Address(), op.Target, op.Value, op.CallData)
}

// Settle pushes the fee owed for the operation to the dispatcher. Anyone
// may invoke it; a failed push is a SettlementFailedError, never silent.
func (g *Gateway) Settle(ctx context.Context, op types.Operation) error {
	owed := worstCaseFee(op)
	if err := g.backend.Transfer(ctx, g.account.Address(), g.guard.Dispatcher(), owed); err != nil {
		return smartaccount.NewSettlementFailedError(g.guard.Dispatcher(), owed, err)
	}

	return nil
}

// SubmitExternally is the out-of-band submission path: anyone may hand the
// principal an operation directly, bypassing the dispatcher. The full
// validation sequence runs first; because no dispatcher is present to
// inspect a result code, a rejected signature is upgraded to an
// InvalidAuthorizationError instead of being returned as a result.
func (g *Gateway) SubmitExternally(ctx context.Context, op types.Operation) ([]byte, error) {
	result, err := g.validate(ctx, op)
	if err != nil {
		return nil, err
	}
	if !result.Authorized() {
		return nil, smartaccount.NewInvalidAuthorizationError(op.Sender, op.Nonce)
	}

	return g.executor.ExecuteCall(ctx, g.account.Address(), op.Target, op.Value, op.CallData)
}

// PrepareForPaymaster is the paymaster-preparation hook. It fails
// unconditionally: downstream protocol expectations depend on the failure
// signal, so it must not silently no-op.
func (g *Gateway) PrepareForPaymaster(context.Context, types.Operation) error {
	return smartaccount.NewNotImplementedError("paymaster preparation")
}

// validate is the caller-agnostic validation sequence shared by Validate
// and SubmitExternally.
func (g *Gateway) validate(ctx context.Context, op types.Operation) (types.ValidationResult, error) {
	// The nonce advance is a mandatory side effect of validation: if the
	// ledger call fails, validation fails with it, so a successfully
	// validated nonce can never be validated again.
	if err := g.nonces.IncrementNonceIfEquals(ctx, g.account.Address(), op.Nonce); err != nil {
		return types.ResultRejected, err
	}

	required := new(big.Int).Add(worstCaseFee(op), bigOrZero(op.Value))
	if balance := g.backend.BalanceOf(g.account.Address()); balance.Cmp(required) < 0 {
		return types.ResultRejected, smartaccount.NewInsufficientBalanceError(required, balance)
	}

	return g.validator.ValidateOperation(g.account.Controller(), op, common.Hash{})
}

// worstCaseFee is the upper bound of what execution can cost the
// dispatcher: the gas limit times the fee-per-gas bound.
func worstCaseFee(op types.Operation) *big.Int {
	return new(big.Int).Mul(bigOrZero(op.Gas.CallGasLimit), bigOrZero(op.Gas.MaxFeePerGas))
}

func bigOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}

	return v
}
