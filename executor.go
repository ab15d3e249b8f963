package smartaccount

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/entrykit/smartaccount/chain"
)

// CallExecutor performs an operation's target invocation against the
// execution environment.
type CallExecutor struct {
	backend  chain.Backend
	deployer common.Address
}

// NewCallExecutor creates an executor. A non-zero deployer address enables
// the protocol-mandated carve-out: calls targeting the reserved deployer
// identity are routed through the privileged system-invocation path instead
// of a direct value-call.
func NewCallExecutor(backend chain.Backend, deployer common.Address) *CallExecutor {
	return &CallExecutor{backend: backend, deployer: deployer}
}

// ExecuteCall invokes target with value and data on behalf of from. On
// revert the callee's raw failure payload is surfaced unchanged inside an
// ExecutionError; environment faults propagate as-is.
func (e *CallExecutor) ExecuteCall(
	ctx context.Context,
	from, target common.Address,
	value *big.Int,
	data []byte,
) ([]byte, error) {
	msg := chain.CallMsg{From: from, To: target, Value: value, Data: data}

	var (
		ret []byte
		err error
	)
	if e.deployer != (common.Address{}) && target == e.deployer {
		ret, err = e.backend.SystemCall(ctx, msg)
	} else {
		ret, err = e.backend.Call(ctx, msg)
	}
	if err != nil {
		var revert *chain.RevertError
		if errors.As(err, &revert) {
			return nil, NewExecutionError(revert.Payload, err)
		}

		return nil, err
	}

	return ret, nil
}
