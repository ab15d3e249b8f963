// Package pull implements the pull-model gateway: a global dispatcher
// calls into the principal to validate an operation, separately pulls the
// funds it is owed, and triggers execution itself. Nonce bookkeeping is
// owned by the dispatcher; this gateway performs no nonce mutation.
package pull

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	smartaccount "github.com/entrykit/smartaccount"
	"github.com/entrykit/smartaccount/chain"
	"github.com/entrykit/smartaccount/gateway"
	"github.com/entrykit/smartaccount/types"
)

// Gateway is the pull-model principal surface.
type Gateway struct {
	account   *smartaccount.Account
	guard     *smartaccount.CallerGuard
	validator *smartaccount.SignatureValidator
	executor  *smartaccount.CallExecutor
	backend   chain.Backend
}

var _ gateway.Gateway = (*Gateway)(nil)

// NewGateway creates a pull gateway for the given principal, trusting the
// given dispatcher. The dispatcher identity is a configurable external
// contract address in this model.
func NewGateway(account *smartaccount.Account, dispatcher common.Address, backend chain.Backend) *Gateway {
	return &Gateway{
		account:   account,
		guard:     smartaccount.NewCallerGuard(dispatcher),
		validator: smartaccount.NewSignatureValidator(smartaccount.EIP191Digester{}),
		executor:  smartaccount.NewCallExecutor(backend, common.Address{}),
		backend:   backend,
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

// Dispatcher returns the trusted dispatcher identity.
func (g *Gateway) Dispatcher() common.Address {
	return g.guard.Dispatcher()
}

// TransferController rotates the controlling key.
func (g *Gateway) TransferController(caller, next common.Address) error {
	return g.account.TransferController(caller, next)
}

// Validate checks the operation's signature over the dispatcher-supplied
// operation hash and, when authorized, pulls the owed amount to the caller.
// Only the dispatcher may invoke it.
//
// The validation result is returned regardless of the settlement outcome: a
// rejected signature is a result code for the dispatcher to inspect, not a
// failure, and a failed settlement transfer never blocks the result from
// being reported.
func (g *Gateway) Validate(
	ctx context.Context,
	caller common.Address,
	op types.Operation,
	opHash common.Hash,
	owed *big.Int,
) (types.ValidationResult, error) {
	if err := g.guard.RequireDispatcher(caller); err != nil {
		return types.ResultRejected, err
	}

	result, err := g.validator.ValidateOperation(g.account.Controller(), op, opHash)
	if err != nil {
		return types.ResultRejected, err
	}

	if result.Authorized() {
		g.settle(ctx, caller, owed)
	}

	return result, nil
}

// Execute performs a target invocation on the principal's behalf. The
// dispatcher or the controller may invoke it; a controller-initiated call
// is trusted without a matching operation or a preceding Validate.
func (g *Gateway) Execute(
	ctx context.Context,
	caller, target common.Address,
	value *big.Int,
	data []byte,
) ([]byte, error) {
	if err := g.guard.RequireDispatcherOrController(caller, g.account.Controller()); err != nil {
		return nil, err
	}

	return g.executor.ExecuteCall(ctx, g.account.Address(), target, value, data)
}

// settle transfers the owed amount of native balance to the caller. A
// failed transfer is tolerated at this layer and the dispatcher re-derives
// and re-requests what it is owed; whether that tolerance is intentional
// fault-tolerance upstream is unresolved, so the behavior is preserved
// as observed rather than tightened.
func (g *Gateway) settle(ctx context.Context, to common.Address, owed *big.Int) {
	if owed == nil || owed.Sign() <= 0 {
		return
	}

	//nolint:errcheck // settlement failure is deliberately not surfaced here
	_ = g.backend.Transfer(ctx, g.account.Address(), to, owed)
}
