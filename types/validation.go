package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"
)

// ValidationResult is the tagged outcome of validating an operation. It is
// always one of ResultRejected or ResultAuthorized, never a half state.
type ValidationResult uint8

const (
	// ResultRejected means the operation's authorization was not accepted.
	ResultRejected ValidationResult = iota

	// ResultAuthorized means the operation is authorized by the
	// principal's controller.
	ResultAuthorized
)

// ValidationSuccessMagic is the 4-byte acceptance marker the push protocol
// expects from a successful validation, derived from the canonical validate
// entry point signature.
var ValidationSuccessMagic = [4]byte(crypto.Keccak256([]byte("validateOperation(bytes32,bytes32,Operation)"))[:4])

// Pull-protocol validation codes. The packing is extensible with validity
// windows in the upper bits; only the failure bit is produced here.
const (
	codeAuthorized = 0
	codeSigFailure = 1
)

// Authorized reports whether the result is ResultAuthorized.
func (r ValidationResult) Authorized() bool {
	return r == ResultAuthorized
}

// PackedCode renders the result as the pull protocol's numeric validation
// code: 0 for success, 1 for a failed signature check.
func (r ValidationResult) PackedCode() *big.Int {
	if r.Authorized() {
		return big.NewInt(codeAuthorized)
	}

	return big.NewInt(codeSigFailure)
}

// Magic renders the result as the push protocol's acceptance marker: the
// success magic when authorized, all zeroes otherwise.
func (r ValidationResult) Magic() [4]byte {
	if r.Authorized() {
		return ValidationSuccessMagic
	}

	return [4]byte{}
}

// String returns a human readable name for the result.
func (r ValidationResult) String() string {
	if r.Authorized() {
		return "authorized"
	}

	return "rejected"
}
