package smartaccount

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/entrykit/smartaccount/types"
)

// SignatureValidator decides whether an operation is authorized by a
// principal's controller.
type SignatureValidator struct {
	digester Digester
}

// NewSignatureValidator creates a validator recovering over digests from
// the given strategy.
func NewSignatureValidator(digester Digester) *SignatureValidator {
	return &SignatureValidator{digester: digester}
}

// ValidateOperation recovers the signing identity from the operation's
// signature over its authorization digest and compares it to the
// controller.
//
// A malformed signature, a failed recovery, or a zero recovered address all
// yield ResultRejected through the same path as a plain mismatch; rejection
// is a result, not a failure. Only a digest construction fault returns an
// error.
func (v *SignatureValidator) ValidateOperation(
	controller common.Address,
	op types.Operation,
	opHash common.Hash,
) (types.ValidationResult, error) {
	digest, err := v.digester.Digest(op, opHash)
	if err != nil {
		return types.ResultRejected, err
	}

	sig, err := types.NewSignatureFromBytes(op.Signature)
	if err != nil {
		return types.ResultRejected, nil
	}

	recovered, err := sig.Recover(digest)
	if err != nil {
		return types.ResultRejected, nil
	}

	if recovered == (common.Address{}) || recovered != controller {
		return types.ResultRejected, nil
	}

	return types.ResultAuthorized, nil
}
