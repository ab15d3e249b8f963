package pull

import (
	"crypto/ecdsa"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	smartaccount "github.com/entrykit/smartaccount"
	"github.com/entrykit/smartaccount/chain"
	"github.com/entrykit/smartaccount/types"
)

type testEnv struct {
	gateway       *Gateway
	backend       *chain.SimBackend
	controllerKey *ecdsa.PrivateKey
	controller    common.Address
	dispatcher    common.Address
	principal     common.Address
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	controllerKey, err := crypto.GenerateKey()
	require.NoError(t, err)

	env := &testEnv{
		backend:       chain.NewSimBackend(),
		controllerKey: controllerKey,
		controller:    crypto.PubkeyToAddress(controllerKey.PublicKey),
		dispatcher:    common.HexToAddress("0xd15b"),
		principal:     common.HexToAddress("0xacc7"),
	}
	account := smartaccount.NewAccount(env.principal, env.controller)
	env.gateway = NewGateway(account, env.dispatcher, env.backend)

	return env
}

func (e *testEnv) signedOperation(t *testing.T, pk *ecdsa.PrivateKey, opHash common.Hash) types.Operation {
	t.Helper()

	op := types.Operation{
		Sender: e.principal,
		Nonce:  big.NewInt(0),
		Target: common.HexToAddress("0x7a11"),
		Gas: types.GasParameters{
			CallGasLimit: big.NewInt(100000),
			MaxFeePerGas: big.NewInt(2),
		},
	}
	require.NoError(t, smartaccount.SignOperation(&op, smartaccount.EIP191Digester{}, opHash, smartaccount.NewPrivateKeySigner(pk)))

	return op
}

func TestGateway_Validate(t *testing.T) {
	t.Parallel()

	opHash := crypto.Keccak256Hash([]byte("operation"))

	t.Run("authorized: controller signature", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		op := env.signedOperation(t, env.controllerKey, opHash)

		got, err := env.gateway.Validate(t.Context(), env.dispatcher, op, opHash, nil)
		require.NoError(t, err)
		assert.Equal(t, types.ResultAuthorized, got)
		assert.Zero(t, got.PackedCode().Sign())
	})

	t.Run("rejected: wrong key is a result, not an error", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		strangerKey, err := crypto.GenerateKey()
		require.NoError(t, err)
		op := env.signedOperation(t, strangerKey, opHash)

		got, err := env.gateway.Validate(t.Context(), env.dispatcher, op, opHash, nil)
		require.NoError(t, err)
		assert.Equal(t, types.ResultRejected, got)
		assert.Equal(t, int64(1), got.PackedCode().Int64())
	})

	t.Run("unauthorized: non-dispatcher caller, even with a valid signature", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		op := env.signedOperation(t, env.controllerKey, opHash)

		_, err := env.gateway.Validate(t.Context(), env.controller, op, opHash, nil)

		var unauthorized *smartaccount.UnauthorizedError
		require.ErrorAs(t, err, &unauthorized)
		assert.Equal(t, smartaccount.CheckDispatcher, unauthorized.Check)
	})

	t.Run("settlement: owed funds are pulled to the caller", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		env.backend.SetBalance(env.principal, big.NewInt(1000))
		op := env.signedOperation(t, env.controllerKey, opHash)

		got, err := env.gateway.Validate(t.Context(), env.dispatcher, op, opHash, big.NewInt(300))
		require.NoError(t, err)
		assert.Equal(t, types.ResultAuthorized, got)
		assert.Zero(t, env.backend.BalanceOf(env.dispatcher).Cmp(big.NewInt(300)))
		assert.Zero(t, env.backend.BalanceOf(env.principal).Cmp(big.NewInt(700)))
	})

	t.Run("settlement: failed transfer does not reject validation", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		// No balance at all: the pull transfer cannot succeed.
		op := env.signedOperation(t, env.controllerKey, opHash)

		got, err := env.gateway.Validate(t.Context(), env.dispatcher, op, opHash, big.NewInt(300))
		require.NoError(t, err)
		assert.Equal(t, types.ResultAuthorized, got)
		assert.Zero(t, env.backend.BalanceOf(env.dispatcher).Sign())
	})

	t.Run("settlement: rejected operations pay nothing", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		env.backend.SetBalance(env.principal, big.NewInt(1000))
		strangerKey, err := crypto.GenerateKey()
		require.NoError(t, err)
		op := env.signedOperation(t, strangerKey, opHash)

		got, err := env.gateway.Validate(t.Context(), env.dispatcher, op, opHash, big.NewInt(300))
		require.NoError(t, err)
		assert.Equal(t, types.ResultRejected, got)
		assert.Zero(t, env.backend.BalanceOf(env.dispatcher).Sign())
	})
}

func TestGateway_Execute(t *testing.T) {
	t.Parallel()

	target := common.HexToAddress("0x7a11")

	t.Run("dispatcher may execute", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		called := false
		env.backend.RegisterContract(target, func(msg chain.CallMsg) ([]byte, error) {
			called = true
			assert.Equal(t, env.principal, msg.From)

			return nil, nil
		})

		_, err := env.gateway.Execute(t.Context(), env.dispatcher, target, nil, []byte{0x01})
		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("controller may execute without a preceding validate", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		called := false
		env.backend.RegisterContract(target, func(chain.CallMsg) ([]byte, error) {
			called = true

			return nil, nil
		})

		_, err := env.gateway.Execute(t.Context(), env.controller, target, nil, nil)
		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("third parties may not execute", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)

		_, err := env.gateway.Execute(t.Context(), common.HexToAddress("0xbad"), target, nil, nil)

		var unauthorized *smartaccount.UnauthorizedError
		require.ErrorAs(t, err, &unauthorized)
		assert.Equal(t, smartaccount.CheckDispatcherOrController, unauthorized.Check)
	})

	t.Run("revert payload surfaces byte-for-byte", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		payload := []byte{0x4e, 0x48, 0x7b, 0x71, 0x00, 0x11}
		env.backend.RegisterContract(target, func(chain.CallMsg) ([]byte, error) {
			return nil, chain.NewRevertError(payload)
		})

		_, err := env.gateway.Execute(t.Context(), env.dispatcher, target, nil, nil)

		var execErr *smartaccount.ExecutionError
		require.ErrorAs(t, err, &execErr)
		assert.Equal(t, payload, execErr.RawPayload)
	})
}

func TestGateway_TransferController(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	next := common.HexToAddress("0xfeed")

	require.Error(t, env.gateway.TransferController(env.dispatcher, next))
	require.NoError(t, env.gateway.TransferController(env.controller, next))
	assert.Equal(t, next, env.gateway.Controller())
}
