package smartaccount

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrykit/smartaccount/types"
)

func testOperation() types.Operation {
	return types.Operation{
		Sender:   common.HexToAddress("0xaa"),
		Nonce:    big.NewInt(0),
		Target:   common.HexToAddress("0xbb"),
		Value:    big.NewInt(100),
		CallData: []byte{0x01, 0x02, 0x03},
		Gas: types.GasParameters{
			CallGasLimit:         big.NewInt(100000),
			VerificationGasLimit: big.NewInt(50000),
			MaxFeePerGas:         big.NewInt(2),
			MaxPriorityFeePerGas: big.NewInt(1),
		},
		AdditionalFields: json.RawMessage(`{"paymaster":null}`),
	}
}

func TestEIP191Digester(t *testing.T) {
	t.Parallel()

	opHash := crypto.Keccak256Hash([]byte("operation"))

	got, err := EIP191Digester{}.Digest(types.Operation{}, opHash)
	require.NoError(t, err)

	want := crypto.Keccak256Hash([]byte("\x19Ethereum Signed Message:\n32"), opHash.Bytes())
	assert.Equal(t, want, got)

	// The prefix is applied exactly once: prefixing the already-prefixed
	// digest changes it.
	doubled, err := EIP191Digester{}.Digest(types.Operation{}, got)
	require.NoError(t, err)
	assert.NotEqual(t, got, doubled)
}

func TestStructuredDigester(t *testing.T) {
	t.Parallel()

	digester := StructuredDigester{ChainID: big.NewInt(280)}

	base, err := digester.Digest(testOperation(), common.Hash{})
	require.NoError(t, err)

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()

		again, err := digester.Digest(testOperation(), common.Hash{})
		require.NoError(t, err)
		assert.Equal(t, base, again)
	})

	t.Run("ignores the external operation hash", func(t *testing.T) {
		t.Parallel()

		got, err := digester.Digest(testOperation(), crypto.Keccak256Hash([]byte("unused")))
		require.NoError(t, err)
		assert.Equal(t, base, got)
	})

	t.Run("ignores the signature field", func(t *testing.T) {
		t.Parallel()

		op := testOperation()
		op.Signature = make([]byte, types.SignatureLength)

		got, err := digester.Digest(op, common.Hash{})
		require.NoError(t, err)
		assert.Equal(t, base, got)
	})

	t.Run("covers every other field", func(t *testing.T) {
		t.Parallel()

		mutations := map[string]func(*types.Operation){
			"sender":           func(op *types.Operation) { op.Sender = common.HexToAddress("0xff") },
			"nonce":            func(op *types.Operation) { op.Nonce = big.NewInt(1) },
			"target":           func(op *types.Operation) { op.Target = common.HexToAddress("0xff") },
			"value":            func(op *types.Operation) { op.Value = big.NewInt(101) },
			"callData":         func(op *types.Operation) { op.CallData = []byte{0xff} },
			"callGasLimit":     func(op *types.Operation) { op.Gas.CallGasLimit = big.NewInt(1) },
			"maxFeePerGas":     func(op *types.Operation) { op.Gas.MaxFeePerGas = big.NewInt(99) },
			"additionalFields": func(op *types.Operation) { op.AdditionalFields = json.RawMessage(`{}`) },
		}

		for name, mutate := range mutations {
			op := testOperation()
			mutate(&op)

			got, err := digester.Digest(op, common.Hash{})
			require.NoError(t, err)
			assert.NotEqual(t, base, got, "mutating %s must change the digest", name)
		}
	})

	t.Run("chain id is part of the domain", func(t *testing.T) {
		t.Parallel()

		got, err := StructuredDigester{ChainID: big.NewInt(281)}.Digest(testOperation(), common.Hash{})
		require.NoError(t, err)
		assert.NotEqual(t, base, got)
	})
}

// The two strategies must never produce the same digest for the same input:
// conflating them (double-prefixing or un-prefixed recovery) is the classic
// integration bug between the two protocols.
func TestDigesters_NotConflated(t *testing.T) {
	t.Parallel()

	op := testOperation()
	opHash := crypto.Keccak256Hash([]byte("operation"))

	prefixed, err := EIP191Digester{}.Digest(op, opHash)
	require.NoError(t, err)

	structured, err := StructuredDigester{ChainID: big.NewInt(280)}.Digest(op, opHash)
	require.NoError(t, err)

	assert.NotEqual(t, prefixed, structured)
}
