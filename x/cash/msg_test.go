package cash

import (
	"strings"
	"testing"

	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/weavetest"
	"github.com/stretchr/testify/assert"
)

func TestSendMsgValidate(t *testing.T) {
	addr := weavetest.NewCondition().Address()
	dest := weavetest.NewCondition().Address()
	positive := coin.NewCoin(10, "IOV")
	negative := coin.NewCoin(-10, "IOV")

	cases := map[string]struct {
		msg     *SendMsg
		wantErr *errors.Error
	}{
		"valid message": {
			msg: &SendMsg{
				Source:      addr,
				Destination: dest,
				Amount:      &positive,
				Memo:        "thanks",
			},
		},
		"missing amount": {
			msg: &SendMsg{
				Source:      addr,
				Destination: dest,
			},
			wantErr: errors.ErrAmount,
		},
		"negative amount": {
			msg: &SendMsg{
				Source:      addr,
				Destination: dest,
				Amount:      &negative,
			},
			wantErr: errors.ErrAmount,
		},
		"bad source": {
			msg: &SendMsg{
				Source:      []byte{1, 2, 3},
				Destination: dest,
				Amount:      &positive,
			},
			wantErr: errors.ErrInput,
		},
		"memo too long": {
			msg: &SendMsg{
				Source:      addr,
				Destination: dest,
				Amount:      &positive,
				Memo:        strings.Repeat("x", maxMemoSize+1),
			},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %v, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestSendMsgPath(t *testing.T) {
	assert.Equal(t, "cash/send", (&SendMsg{}).Path())
}
