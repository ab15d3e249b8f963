package smartaccount

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	abiutils "github.com/entrykit/smartaccount/internal/utils/abi"
	"github.com/entrykit/smartaccount/types"
)

// operationDomainSeparator namespaces operation digests so they cannot
// collide with other signed content.
var operationDomainSeparator = crypto.Keccak256Hash([]byte("SMART_ACCOUNT_DOMAIN_SEPARATOR_OPERATION"))

// Digester derives the authorization digest an operation's signature is
// recovered over. The digest is a pure function of every operation field
// except the signature itself.
//
// The two implementations must never be conflated: EIP191Digester prefixes,
// StructuredDigester does not, and double-prefixing silently breaks
// recovery.
type Digester interface {
	Digest(op types.Operation, opHash common.Hash) (common.Hash, error)
}

// EIP191Digester applies the Ethereum personal-message prefix to an
// externally supplied operation hash. The pull protocol's dispatcher
// computes the operation hash; this core only transforms it.
type EIP191Digester struct{}

var _ Digester = EIP191Digester{}

// Digest returns keccak256("\x19Ethereum Signed Message:\n32" || opHash).
func (EIP191Digester) Digest(_ types.Operation, opHash common.Hash) (common.Hash, error) {
	return toEthSignedMessageHash(opHash), nil
}

// StructuredDigester hashes the operation fields directly under the
// operation domain separator and a chain id. No personal-message prefix is
// applied; the push protocol recovers over the structured hash as-is.
type StructuredDigester struct {
	ChainID *big.Int
}

var _ Digester = StructuredDigester{}

// operationTuple mirrors the ABI layout of the signable operation fields.
type operationTuple struct {
	Sender               common.Address
	Nonce                *big.Int
	Target               common.Address
	Value                *big.Int
	CallDataHash         [32]byte
	CallGasLimit         *big.Int
	VerificationGasLimit *big.Int
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
	ExtensionsHash       [32]byte
}

const operationTupleABI = `[
	{"type":"bytes32"},
	{"type":"uint256"},
	{"type":"tuple","components":[
		{"name":"sender","type":"address"},
		{"name":"nonce","type":"uint256"},
		{"name":"target","type":"address"},
		{"name":"value","type":"uint256"},
		{"name":"callDataHash","type":"bytes32"},
		{"name":"callGasLimit","type":"uint256"},
		{"name":"verificationGasLimit","type":"uint256"},
		{"name":"maxFeePerGas","type":"uint256"},
		{"name":"maxPriorityFeePerGas","type":"uint256"},
		{"name":"extensionsHash","type":"bytes32"}
	]}
]`

// Digest ABI-encodes the domain separator, the chain id and the operation
// fields, and hashes the encoding. The operation hash argument is unused;
// the push protocol derives everything from the operation itself.
func (d StructuredDigester) Digest(op types.Operation, _ common.Hash) (common.Hash, error) {
	tuple := operationTuple{
		Sender:               op.Sender,
		Nonce:                bigOrZero(op.Nonce),
		Target:               op.Target,
		Value:                bigOrZero(op.Value),
		CallDataHash:         crypto.Keccak256Hash(op.CallData),
		CallGasLimit:         bigOrZero(op.Gas.CallGasLimit),
		VerificationGasLimit: bigOrZero(op.Gas.VerificationGasLimit),
		MaxFeePerGas:         bigOrZero(op.Gas.MaxFeePerGas),
		MaxPriorityFeePerGas: bigOrZero(op.Gas.MaxPriorityFeePerGas),
		ExtensionsHash:       crypto.Keccak256Hash(op.AdditionalFields),
	}

	encoded, err := abiutils.ABIEncode(operationTupleABI, operationDomainSeparator, bigOrZero(d.ChainID), tuple)
	if err != nil {
		return common.Hash{}, err
	}

	return crypto.Keccak256Hash(encoded), nil
}

func toEthSignedMessageHash(messageHash common.Hash) common.Hash {
	// Add the Ethereum signed message prefix
	prefix := []byte("\x19Ethereum Signed Message:\n32")

	return crypto.Keccak256Hash(prefix, messageHash.Bytes())
}

func bigOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}

	return v
}
