package smartaccount

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/entrykit/smartaccount/types"
)

// Signer is an interface for different strategies for signing digests.
type Signer interface {
	Sign(digest common.Hash) ([]byte, error)
	GetAddress() (common.Address, error)
}

var _ Signer = &PrivateKeySigner{}

// PrivateKeySigner signs digests using a private key.
type PrivateKeySigner struct {
	pk *ecdsa.PrivateKey
}

// NewPrivateKeySigner creates a new PrivateKeySigner.
func NewPrivateKeySigner(pk *ecdsa.PrivateKey) *PrivateKeySigner {
	return &PrivateKeySigner{pk: pk}
}

// Sign signs the digest using the private key.
func (s *PrivateKeySigner) Sign(digest common.Hash) ([]byte, error) {
	return crypto.Sign(digest.Bytes(), s.pk)
}

// GetAddress returns the address of the signer.
func (s *PrivateKeySigner) GetAddress() (common.Address, error) {
	return crypto.PubkeyToAddress(s.pk.PublicKey), nil
}

// SignOperation derives the operation's authorization digest with the given
// strategy, signs it, and attaches the signature to the operation. The
// digest covers every field except the signature, so signing must be the
// last construction step.
func SignOperation(op *types.Operation, digester Digester, opHash common.Hash, signer Signer) error {
	digest, err := digester.Digest(*op, opHash)
	if err != nil {
		return err
	}

	sig, err := signer.Sign(digest)
	if err != nil {
		return err
	}

	op.Signature = sig

	return nil
}
