package chain

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Handler is a contract installed at an address in a simulated backend. A
// returned *RevertError is treated as the callee's revert payload; any
// other error is an environment fault.
type Handler func(msg CallMsg) ([]byte, error)

// SimBackend is an in-memory Backend and NonceLedger used by tests, the
// CLI, and the example. It models exactly what the gateway needs from the
// environment: balances, installed contracts, a privileged system call
// route, and per-account nonces.
type SimBackend struct {
	mu       sync.Mutex
	balances map[common.Address]*big.Int
	handlers map[common.Address]Handler
	system   map[common.Address]Handler
	nonces   map[common.Address]*big.Int
}

var (
	_ Backend     = (*SimBackend)(nil)
	_ NonceLedger = (*SimBackend)(nil)
)

// NewSimBackend creates an empty simulated backend.
func NewSimBackend() *SimBackend {
	return &SimBackend{
		balances: make(map[common.Address]*big.Int),
		handlers: make(map[common.Address]Handler),
		system:   make(map[common.Address]Handler),
		nonces:   make(map[common.Address]*big.Int),
	}
}

// SetBalance sets the native balance of an address.
func (b *SimBackend) SetBalance(addr common.Address, amount *big.Int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.balances[addr] = new(big.Int).Set(amount)
}

// RegisterContract installs a handler at an address.
func (b *SimBackend) RegisterContract(addr common.Address, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[addr] = h
}

// RegisterSystemContract installs a handler reachable only through
// SystemCall.
func (b *SimBackend) RegisterSystemContract(addr common.Address, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.system[addr] = h
}

// BalanceOf returns a copy of the address's native balance.
func (b *SimBackend) BalanceOf(addr common.Address) *big.Int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return new(big.Int).Set(b.balance(addr))
}

// Transfer moves native balance between two addresses.
func (b *SimBackend) Transfer(_ context.Context, from, to common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() == 0 {
		return nil
	}
	if amount.Sign() < 0 {
		return fmt.Errorf("negative transfer amount %s", amount)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return b.transfer(from, to, amount)
}

// Call invokes the handler installed at the message's target. The value
// transfer is applied only if the handler succeeds; a target without a
// handler behaves like an externally owned account and just receives the
// value.
func (b *SimBackend) Call(_ context.Context, msg CallMsg) ([]byte, error) {
	b.mu.Lock()
	h, installed := b.handlers[msg.To]
	b.mu.Unlock()

	if !installed {
		if msg.Value == nil || msg.Value.Sign() == 0 {
			return nil, nil
		}
		b.mu.Lock()
		defer b.mu.Unlock()

		return nil, b.transfer(msg.From, msg.To, msg.Value)
	}

	ret, err := h(msg)
	if err != nil {
		return nil, err
	}

	if msg.Value != nil && msg.Value.Sign() > 0 {
		b.mu.Lock()
		defer b.mu.Unlock()
		if err := b.transfer(msg.From, msg.To, msg.Value); err != nil {
			return nil, err
		}
	}

	return ret, nil
}

// SystemCall invokes a handler installed through RegisterSystemContract.
func (b *SimBackend) SystemCall(_ context.Context, msg CallMsg) ([]byte, error) {
	b.mu.Lock()
	h, installed := b.system[msg.To]
	b.mu.Unlock()

	if !installed {
		return nil, fmt.Errorf("no system contract at %s", msg.To)
	}

	return h(msg)
}

// IncrementNonceIfEquals advances the account's nonce only if it currently
// equals expected. The check and the advance happen under one lock with no
// intervening call, so a nonce can never be consumed twice.
func (b *SimBackend) IncrementNonceIfEquals(_ context.Context, account common.Address, expected *big.Int) error {
	if expected == nil {
		expected = new(big.Int)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	current, ok := b.nonces[account]
	if !ok {
		current = new(big.Int)
	}
	if current.Cmp(expected) != 0 {
		return &NonceMismatchError{
			Account:  account,
			Expected: new(big.Int).Set(expected),
			Current:  new(big.Int).Set(current),
		}
	}
	b.nonces[account] = new(big.Int).Add(current, big.NewInt(1))

	return nil
}

// Nonce returns the account's current nonce.
func (b *SimBackend) Nonce(account common.Address) *big.Int {
	b.mu.Lock()
	defer b.mu.Unlock()

	current, ok := b.nonces[account]
	if !ok {
		return new(big.Int)
	}

	return new(big.Int).Set(current)
}

func (b *SimBackend) balance(addr common.Address) *big.Int {
	bal, ok := b.balances[addr]
	if !ok {
		return new(big.Int)
	}

	return bal
}

func (b *SimBackend) transfer(from, to common.Address, amount *big.Int) error {
	fromBal := b.balance(from)
	if fromBal.Cmp(amount) < 0 {
		return fmt.Errorf("%w: %s has %s, needs %s", ErrInsufficientFunds, from, fromBal, amount)
	}

	b.balances[from] = new(big.Int).Sub(fromBal, amount)
	b.balances[to] = new(big.Int).Add(b.balance(to), amount)

	return nil
}
