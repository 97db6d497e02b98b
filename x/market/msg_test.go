package market

import (
	"strings"
	"testing"

	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/weavetest"
	"github.com/stretchr/testify/assert"
)

func TestMintTokenMsgValidate(t *testing.T) {
	cases := map[string]struct {
		msg     *MintTokenMsg
		wantErr *errors.Error
	}{
		"valid": {
			msg: &MintTokenMsg{URI: "ipfs://asset", RoyaltyBps: 500},
		},
		"zero royalty is fine": {
			msg: &MintTokenMsg{URI: "ipfs://asset"},
		},
		"royalty at the cap": {
			msg: &MintTokenMsg{URI: "ipfs://asset", RoyaltyBps: maxRoyaltyBps},
		},
		"empty URI": {
			msg:     &MintTokenMsg{RoyaltyBps: 500},
			wantErr: ErrInvalidURI,
		},
		"oversized URI": {
			msg:     &MintTokenMsg{URI: strings.Repeat("a", maxURISize+1)},
			wantErr: ErrInvalidURI,
		},
		"royalty above the cap": {
			msg:     &MintTokenMsg{URI: "ipfs://asset", RoyaltyBps: maxRoyaltyBps + 1},
			wantErr: ErrInvalidRoyalty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.msg.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("want %v, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestListTokenMsgValidate(t *testing.T) {
	cases := map[string]struct {
		msg     *ListTokenMsg
		wantErr *errors.Error
	}{
		"valid": {
			msg: &ListTokenMsg{TokenID: weavetest.SequenceID(1), Price: coin.NewCoin(100, "IOV")},
		},
		"short token ID": {
			msg:     &ListTokenMsg{TokenID: []byte{1}, Price: coin.NewCoin(100, "IOV")},
			wantErr: ErrInvalidToken,
		},
		"zero price": {
			msg:     &ListTokenMsg{TokenID: weavetest.SequenceID(1), Price: coin.NewCoin(0, "IOV")},
			wantErr: ErrInvalidPrice,
		},
		"negative price": {
			msg:     &ListTokenMsg{TokenID: weavetest.SequenceID(1), Price: coin.NewCoin(-5, "IOV")},
			wantErr: ErrInvalidPrice,
		},
		"bad ticker": {
			msg:     &ListTokenMsg{TokenID: weavetest.SequenceID(1), Price: coin.NewCoin(5, "x")},
			wantErr: ErrInvalidPrice,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.msg.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("want %v, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestTransferMsgsValidate(t *testing.T) {
	good := weavetest.NewCondition().Address()

	assert.NoError(t, (&TransferTokenMsg{TokenID: weavetest.SequenceID(1), NewOwner: good}).Validate())
	assert.NoError(t, (&TransferAdminMsg{NewAdmin: good}).Validate())

	if err := (&TransferTokenMsg{TokenID: weavetest.SequenceID(1), NewOwner: []byte{1, 2}}).Validate(); !ErrInvalidTarget.Is(err) {
		t.Fatalf("want ErrInvalidTarget, got %+v", err)
	}
	if err := (&TransferAdminMsg{NewAdmin: ModuleCondition().Address()}).Validate(); !ErrInvalidTarget.Is(err) {
		t.Fatalf("want ErrInvalidTarget, got %+v", err)
	}
	if err := (&TransferAdminMsg{}).Validate(); !ErrInvalidTarget.Is(err) {
		t.Fatalf("want ErrInvalidTarget, got %+v", err)
	}
}

func TestMsgPaths(t *testing.T) {
	assert.Equal(t, "market/mint", (&MintTokenMsg{}).Path())
	assert.Equal(t, "market/list", (&ListTokenMsg{}).Path())
	assert.Equal(t, "market/cancel", (&CancelListingMsg{}).Path())
	assert.Equal(t, "market/buy", (&BuyTokenMsg{}).Path())
	assert.Equal(t, "market/transfer", (&TransferTokenMsg{}).Path())
	assert.Equal(t, "market/transfer_admin", (&TransferAdminMsg{}).Path())
}
