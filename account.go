// Package smartaccount implements a contract-resident principal whose
// operations are authorized by a single controlling key. The shared core in
// this package (controller state, caller guard, digest strategies,
// signature validation, call execution) is composed into the two protocol
// variants under gateway/pull and gateway/push.
package smartaccount

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

// ErrZeroController is returned when a controller rotation targets the zero
// address.
var ErrZeroController = errors.New("controller cannot be the zero address")

// Account is a principal: an address governed by a controller whose
// signature authorizes operations. The controller is the only persistent
// state the core owns.
type Account struct {
	address    common.Address
	controller common.Address
}

// NewAccount creates a principal at the given address governed by the
// given controller.
func NewAccount(address, controller common.Address) *Account {
	return &Account{address: address, controller: controller}
}

// Address returns the principal's own address.
func (a *Account) Address() common.Address {
	return a.address
}

// Controller returns the address whose signature currently authorizes
// operations for this principal.
func (a *Account) Controller() common.Address {
	return a.controller
}

// TransferController rotates the controller. Only the current controller
// may rotate, and never to the zero address; the controller is never
// rotated implicitly.
func (a *Account) TransferController(caller, next common.Address) error {
	if caller != a.controller {
		return NewUnauthorizedError(caller, "controller")
	}
	if next == (common.Address{}) {
		return ErrZeroController
	}
	a.controller = next

	return nil
}
