// Package gateway defines the entry-point surface the two protocol
// variants expose over a principal.
//
// Both variants share one state machine per invocation:
//
//	Received -> Validating -> {Rejected, Settling} -> Executing -> {Completed, Failed}
//
// Terminal states are not stored; every invocation is independent and the
// only persistent state is the controller identity and the native balance.
package gateway

import (
	"github.com/ethereum/go-ethereum/common"
)

// Gateway is the surface both protocol variants share. The variant-specific
// validate/execute/settle entry points differ in signature and caller
// authority and live on the concrete types in gateway/pull and
// gateway/push.
type Gateway interface {
	// Address returns the principal's address.
	Address() common.Address

	// Controller returns the address whose signature authorizes
	// operations.
	Controller() common.Address

	// Dispatcher returns the trusted dispatcher identity for this
	// variant.
	Dispatcher() common.Address

	// TransferController rotates the controlling key. Only the current
	// controller may rotate.
	TransferController(caller, next common.Address) error
}
