package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"fmt"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	// SignatureLength is the length in bytes of a serialized signature
	// (R || S || V).
	SignatureLength = 65

	// SignatureComponentSize is the size in bytes of each of the R and S
	// components.
	SignatureComponentSize = 32

	// SignatureVOffset is subtracted from the recovery id (v) when callers
	// supply the Ethereum convention of 27/28 instead of 0/1.
	SignatureVOffset = 27
)

// Signature is an ECDSA signature split into its R, S and V components.
type Signature struct {
	R common.Hash `json:"r"`
	S common.Hash `json:"s"`
	V uint8       `json:"v"`
}

// NewSignatureFromBytes parses a 65-byte R || S || V serialization.
func NewSignatureFromBytes(sig []byte) (Signature, error) {
	if len(sig) != SignatureLength {
		return Signature{}, fmt.Errorf("invalid signature length: %d", len(sig))
	}

	return Signature{
		R: common.BytesToHash(sig[:SignatureComponentSize]),
		S: common.BytesToHash(sig[SignatureComponentSize : SignatureLength-1]),
		V: sig[SignatureLength-1],
	}, nil
}

// ToBytes serializes the signature as R || S || V.
func (s Signature) ToBytes() []byte {
	return slices.Concat(
		s.R.Bytes(),
		s.S.Bytes(),
		[]byte{s.V},
	)
}

// Recover returns the address that produced the signature over the given
// digest.
func (s Signature) Recover(digest common.Hash) (common.Address, error) {
	sig := s.ToBytes()

	// crypto.SigToPub expects a recovery id of 0 or 1, while signatures in
	// the wild commonly carry 27 or 28.
	if sig[SignatureLength-1] >= SignatureVOffset {
		sig[SignatureLength-1] -= SignatureVOffset
	}

	pubKey, err := crypto.SigToPub(digest.Bytes(), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover public key: %w", err)
	}

	return crypto.PubkeyToAddress(*pubKey), nil
}
