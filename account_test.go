package smartaccount

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_TransferController(t *testing.T) {
	t.Parallel()

	var (
		principal  = common.HexToAddress("0x100")
		controller = common.HexToAddress("0xaa")
		next       = common.HexToAddress("0xbb")
		stranger   = common.HexToAddress("0xcc")
	)

	tests := []struct {
		name       string
		giveCaller common.Address
		giveNext   common.Address
		wantErr    string
		wantCtrl   common.Address
	}{
		{
			name:       "success: controller rotates",
			giveCaller: controller,
			giveNext:   next,
			wantCtrl:   next,
		},
		{
			name:       "failure: non-controller caller",
			giveCaller: stranger,
			giveNext:   next,
			wantErr:    "failed controller check",
			wantCtrl:   controller,
		},
		{
			name:       "failure: zero next controller",
			giveCaller: controller,
			giveNext:   common.Address{},
			wantErr:    "controller cannot be the zero address",
			wantCtrl:   controller,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			account := NewAccount(principal, controller)
			err := account.TransferController(tt.giveCaller, tt.giveNext)

			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantCtrl, account.Controller())
			assert.Equal(t, principal, account.Address())
		})
	}
}
