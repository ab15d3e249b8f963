package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationResult_Authorized(t *testing.T) {
	t.Parallel()

	assert.True(t, ResultAuthorized.Authorized())
	assert.False(t, ResultRejected.Authorized())
}

func TestValidationResult_PackedCode(t *testing.T) {
	t.Parallel()

	assert.Zero(t, ResultAuthorized.PackedCode().Cmp(big.NewInt(0)))
	assert.Zero(t, ResultRejected.PackedCode().Cmp(big.NewInt(1)))
}

func TestValidationResult_Magic(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ValidationSuccessMagic, ResultAuthorized.Magic())
	assert.Equal(t, [4]byte{}, ResultRejected.Magic())
	assert.NotEqual(t, [4]byte{}, ValidationSuccessMagic)
}

func TestValidationResult_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "authorized", ResultAuthorized.String())
	assert.Equal(t, "rejected", ResultRejected.String())
}
