package smartaccount

import (
	"github.com/ethereum/go-ethereum/common"
)

// Guard check names reported in UnauthorizedError.
const (
	CheckDispatcher             = "dispatcher"
	CheckDispatcherOrController = "dispatcher-or-controller"
)

// CallerGuard restricts which callers may invoke which entry points. The
// two protocol variants differ only in who the trusted dispatcher identity
// is; the checks themselves are identical.
type CallerGuard struct {
	dispatcher common.Address
}

// NewCallerGuard creates a guard trusting the given dispatcher identity.
func NewCallerGuard(dispatcher common.Address) *CallerGuard {
	return &CallerGuard{dispatcher: dispatcher}
}

// Dispatcher returns the trusted dispatcher identity.
func (g *CallerGuard) Dispatcher() common.Address {
	return g.dispatcher
}

// RequireDispatcher fails unless the caller is the trusted dispatcher.
func (g *CallerGuard) RequireDispatcher(caller common.Address) error {
	if caller != g.dispatcher {
		return NewUnauthorizedError(caller, CheckDispatcher)
	}

	return nil
}

// RequireDispatcherOrController fails unless the caller is the trusted
// dispatcher or the principal's controller.
func (g *CallerGuard) RequireDispatcherOrController(caller, controller common.Address) error {
	if caller != g.dispatcher && caller != controller {
		return NewUnauthorizedError(caller, CheckDispatcherOrController)
	}

	return nil
}
