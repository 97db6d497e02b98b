package market

import (
	"context"
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/gconf"
	"github.com/iov-one/bazaar/orm"
	"github.com/iov-one/bazaar/store"
	"github.com/iov-one/bazaar/weavetest"
	"github.com/iov-one/bazaar/x/cash"
	"github.com/iov-one/bazaar/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db       bazaar.CacheableKVStore
	admin    bazaar.Condition
	control  cash.Controller
	tokens   orm.ModelBucket
	listings orm.ModelBucket
}

func newTestEnv(t testing.TB) *testEnv {
	t.Helper()

	env := &testEnv{
		db:       store.MemStore(),
		admin:    weavetest.NewCondition(),
		control:  cash.NewController(cash.NewBucket()),
		tokens:   NewTokenBucket(),
		listings: NewListingBucket(),
	}
	conf := Configuration{
		Owner:  env.admin.Address(),
		Ticker: "IOV",
	}
	if err := gconf.Save(env.db, packageName, &conf); err != nil {
		t.Fatalf("cannot save configuration: %s", err)
	}
	return env
}

func (env *testEnv) mint(t testing.TB, signer bazaar.Condition, uri string, bps uint32) []byte {
	t.Helper()

	h := MintTokenHandler{auth: &weavetest.Auth{Signer: signer}, tokens: env.tokens}
	tx := &weavetest.Tx{Msg: &MintTokenMsg{URI: uri, RoyaltyBps: bps}}
	res, err := h.Deliver(context.Background(), env.db, tx)
	if err != nil {
		t.Fatalf("cannot mint: %+v", err)
	}
	return res.Data
}

func (env *testEnv) list(signer bazaar.Condition, tokenID []byte, price coin.Coin) error {
	h := ListTokenHandler{auth: &weavetest.Auth{Signer: signer}, tokens: env.tokens, listings: env.listings}
	tx := &weavetest.Tx{Msg: &ListTokenMsg{TokenID: tokenID, Price: price}}
	_, err := h.Deliver(context.Background(), env.db, tx)
	return err
}

func (env *testEnv) transfer(signer bazaar.Condition, tokenID []byte, to bazaar.Address) error {
	h := TransferTokenHandler{auth: &weavetest.Auth{Signer: signer}, tokens: env.tokens}
	tx := &weavetest.Tx{Msg: &TransferTokenMsg{TokenID: tokenID, NewOwner: to}}
	_, err := h.Deliver(context.Background(), env.db, tx)
	return err
}

func (env *testEnv) buy(signer bazaar.Condition, tokenID []byte) (*bazaar.DeliverResult, error) {
	h := BuyTokenHandler{
		auth:     &weavetest.Auth{Signer: signer},
		tokens:   env.tokens,
		listings: env.listings,
		bank:     env.control,
	}
	tx := &weavetest.Tx{Msg: &BuyTokenMsg{TokenID: tokenID}}
	return h.Deliver(context.Background(), env.db, tx)
}

func TestMintToken(t *testing.T) {
	env := newTestEnv(t)
	creator := weavetest.NewCondition()

	first := env.mint(t, creator, "ipfs://first", 500)
	assert.Equal(t, weavetest.SequenceID(1), first)

	second := env.mint(t, creator, "ipfs://second", 0)
	assert.Equal(t, weavetest.SequenceID(2), second)

	var token Token
	require.NoError(t, env.tokens.One(env.db, first, &token))
	assert.Equal(t, creator.Address(), token.Owner)
	assert.Equal(t, creator.Address(), token.Creator)
	assert.Equal(t, "ipfs://first", token.URI)
	assert.Equal(t, uint32(500), token.RoyaltyBps)
}

func TestMintTokenRequiresSigner(t *testing.T) {
	env := newTestEnv(t)

	h := MintTokenHandler{auth: &weavetest.Auth{}, tokens: env.tokens}
	tx := &weavetest.Tx{Msg: &MintTokenMsg{URI: "ipfs://asset"}}
	if _, err := h.Deliver(context.Background(), env.db, tx); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("want ErrUnauthorized, got %+v", err)
	}
}

func TestListToken(t *testing.T) {
	env := newTestEnv(t)
	owner := weavetest.NewCondition()
	stranger := weavetest.NewCondition()
	tokenID := env.mint(t, owner, "ipfs://asset", 500)

	cases := map[string]struct {
		signer  bazaar.Condition
		tokenID []byte
		price   coin.Coin
		wantErr *errors.Error
	}{
		"owner lists": {
			signer:  owner,
			tokenID: tokenID,
			price:   coin.NewCoin(100, "IOV"),
		},
		"wrong currency": {
			signer:  owner,
			tokenID: tokenID,
			price:   coin.NewCoin(100, "ETH"),
			wantErr: ErrInvalidPrice,
		},
		"unknown token": {
			signer:  owner,
			tokenID: weavetest.SequenceID(42),
			price:   coin.NewCoin(100, "IOV"),
			wantErr: ErrInvalidToken,
		},
		"not the owner": {
			signer:  stranger,
			tokenID: tokenID,
			price:   coin.NewCoin(100, "IOV"),
			wantErr: ErrNotOwner,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := env.list(tc.signer, tc.tokenID, tc.price)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %v, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestRelistReplacesSilently(t *testing.T) {
	env := newTestEnv(t)
	owner := weavetest.NewCondition()
	tokenID := env.mint(t, owner, "ipfs://asset", 0)

	require.NoError(t, env.list(owner, tokenID, coin.NewCoin(100, "IOV")))
	require.NoError(t, env.list(owner, tokenID, coin.NewCoin(250, "IOV")))

	var listing Listing
	require.NoError(t, env.listings.One(env.db, tokenID, &listing))
	assert.Equal(t, coin.NewCoin(250, "IOV"), listing.Price)
	assert.Equal(t, owner.Address(), listing.Seller)
}

func TestCancelListing(t *testing.T) {
	env := newTestEnv(t)
	owner := weavetest.NewCondition()
	stranger := weavetest.NewCondition()
	tokenID := env.mint(t, owner, "ipfs://asset", 0)
	require.NoError(t, env.list(owner, tokenID, coin.NewCoin(100, "IOV")))

	cancel := func(signer bazaar.Condition, id []byte) error {
		h := CancelListingHandler{auth: &weavetest.Auth{Signer: signer}, tokens: env.tokens, listings: env.listings}
		tx := &weavetest.Tx{Msg: &CancelListingMsg{TokenID: id}}
		_, err := h.Deliver(context.Background(), env.db, tx)
		return err
	}

	// An ID that was never minted is not a listing problem.
	if err := cancel(owner, weavetest.SequenceID(42)); !ErrInvalidToken.Is(err) {
		t.Fatalf("want ErrInvalidToken, got %+v", err)
	}
	if err := cancel(stranger, tokenID); !ErrNotOwner.Is(err) {
		t.Fatalf("want ErrNotOwner, got %+v", err)
	}
	require.NoError(t, cancel(owner, tokenID))
	if err := env.listings.Has(env.db, tokenID); !errors.ErrNotFound.Is(err) {
		t.Fatalf("listing must be gone, got %+v", err)
	}
	if err := cancel(owner, tokenID); !ErrNoListing.Is(err) {
		t.Fatalf("want ErrNoListing, got %+v", err)
	}
}

func TestBuyTokenSettlement(t *testing.T) {
	env := newTestEnv(t)
	creator := weavetest.NewCondition()
	seller := weavetest.NewCondition()
	buyer := weavetest.NewCondition()

	// The creator mints with a 5% royalty and hands the token over, so
	// that the royalty and the payout go to different wallets.
	tokenID := env.mint(t, creator, "ipfs://asset", 500)
	require.NoError(t, env.transfer(creator, tokenID, seller.Address()))
	require.NoError(t, env.list(seller, tokenID, coin.NewCoin(1000000, "IOV")))
	require.NoError(t, env.control.IssueCoins(env.db, buyer.Address(), coin.NewCoin(1000000, "IOV")))

	res, err := env.buy(buyer, tokenID)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Tags)

	creatorBalance, err := env.control.Balance(env.db, creator.Address())
	require.NoError(t, err)
	assert.True(t, creatorBalance.Contains(coin.NewCoin(50000, "IOV")))
	assert.False(t, creatorBalance.Contains(coin.NewCoin(50001, "IOV")))

	sellerBalance, err := env.control.Balance(env.db, seller.Address())
	require.NoError(t, err)
	assert.True(t, sellerBalance.Contains(coin.NewCoin(950000, "IOV")))

	buyerBalance, err := env.control.Balance(env.db, buyer.Address())
	require.NoError(t, err)
	assert.False(t, buyerBalance.IsPositive())

	var token Token
	require.NoError(t, env.tokens.One(env.db, tokenID, &token))
	assert.Equal(t, buyer.Address(), token.Owner)
	assert.Equal(t, creator.Address(), token.Creator)

	if err := env.listings.Has(env.db, tokenID); !errors.ErrNotFound.Is(err) {
		t.Fatalf("listing must be gone, got %+v", err)
	}

	// The listing is gone, a second buy must fail.
	if _, err := env.buy(buyer, tokenID); !ErrNoListing.Is(err) {
		t.Fatalf("want ErrNoListing, got %+v", err)
	}
}

func TestBuyTokenZeroRoyalty(t *testing.T) {
	env := newTestEnv(t)
	creator := weavetest.NewCondition()
	seller := weavetest.NewCondition()
	buyer := weavetest.NewCondition()

	tokenID := env.mint(t, creator, "ipfs://asset", 0)
	require.NoError(t, env.transfer(creator, tokenID, seller.Address()))
	require.NoError(t, env.list(seller, tokenID, coin.NewCoin(777, "IOV")))
	require.NoError(t, env.control.IssueCoins(env.db, buyer.Address(), coin.NewCoin(777, "IOV")))

	_, err := env.buy(buyer, tokenID)
	require.NoError(t, err)

	// No royalty leg ran, so the creator never got a wallet.
	if _, err := env.control.Balance(env.db, creator.Address()); !errors.ErrEmpty.Is(err) {
		t.Fatalf("want ErrEmpty, got %+v", err)
	}
	sellerBalance, err := env.control.Balance(env.db, seller.Address())
	require.NoError(t, err)
	assert.True(t, sellerBalance.Contains(coin.NewCoin(777, "IOV")))
}

func TestBuyStaleListing(t *testing.T) {
	env := newTestEnv(t)
	seller := weavetest.NewCondition()
	other := weavetest.NewCondition()
	buyer := weavetest.NewCondition()

	tokenID := env.mint(t, seller, "ipfs://asset", 0)
	require.NoError(t, env.list(seller, tokenID, coin.NewCoin(100, "IOV")))

	// Ownership changes after listing; the stale listing must not settle.
	require.NoError(t, env.transfer(seller, tokenID, other.Address()))

	require.NoError(t, env.control.IssueCoins(env.db, buyer.Address(), coin.NewCoin(100, "IOV")))
	if _, err := env.buy(buyer, tokenID); !ErrNotOwner.Is(err) {
		t.Fatalf("want ErrNotOwner, got %+v", err)
	}

	// No funds moved and the token stays put.
	buyerBalance, err := env.control.Balance(env.db, buyer.Address())
	require.NoError(t, err)
	assert.True(t, buyerBalance.Contains(coin.NewCoin(100, "IOV")))

	var token Token
	require.NoError(t, env.tokens.One(env.db, tokenID, &token))
	assert.Equal(t, other.Address(), token.Owner)
}

func TestBuyRollsBackOnFailedLeg(t *testing.T) {
	env := newTestEnv(t)
	creator := weavetest.NewCondition()
	seller := weavetest.NewCondition()
	buyer := weavetest.NewCondition()

	tokenID := env.mint(t, creator, "ipfs://asset", 500)
	require.NoError(t, env.transfer(creator, tokenID, seller.Address()))
	require.NoError(t, env.list(seller, tokenID, coin.NewCoin(1000000, "IOV")))

	// Enough for the royalty leg, not for the payout leg.
	require.NoError(t, env.control.IssueCoins(env.db, buyer.Address(), coin.NewCoin(100000, "IOV")))

	h := BuyTokenHandler{
		auth:     &weavetest.Auth{Signer: buyer},
		tokens:   env.tokens,
		listings: env.listings,
		bank:     env.control,
	}
	savepoint := utils.NewSavepoint().OnDeliver()
	tx := &weavetest.Tx{Msg: &BuyTokenMsg{TokenID: tokenID}}
	if _, err := savepoint.Deliver(context.Background(), env.db, tx, h); !errors.ErrAmount.Is(err) {
		t.Fatalf("want ErrAmount, got %+v", err)
	}

	// Everything is as before the buy, including the royalty leg.
	buyerBalance, err := env.control.Balance(env.db, buyer.Address())
	require.NoError(t, err)
	assert.True(t, buyerBalance.Contains(coin.NewCoin(100000, "IOV")))
	if _, err := env.control.Balance(env.db, creator.Address()); !errors.ErrEmpty.Is(err) {
		t.Fatalf("want ErrEmpty, got %+v", err)
	}

	var token Token
	require.NoError(t, env.tokens.One(env.db, tokenID, &token))
	assert.Equal(t, seller.Address(), token.Owner)
	require.NoError(t, env.listings.Has(env.db, tokenID))
}

func TestTransferTokenToSelf(t *testing.T) {
	env := newTestEnv(t)
	owner := weavetest.NewCondition()
	tokenID := env.mint(t, owner, "ipfs://asset", 0)

	if err := env.transfer(owner, tokenID, owner.Address()); !ErrSelfTransfer.Is(err) {
		t.Fatalf("want ErrSelfTransfer, got %+v", err)
	}
}

func TestTransferAdmin(t *testing.T) {
	env := newTestEnv(t)
	successor := weavetest.NewCondition()
	stranger := weavetest.NewCondition()

	transferAdmin := func(signer bazaar.Condition, target bazaar.Address) error {
		h := TransferAdminHandler{auth: &weavetest.Auth{Signer: signer}}
		tx := &weavetest.Tx{Msg: &TransferAdminMsg{NewAdmin: target}}
		_, err := h.Deliver(context.Background(), env.db, tx)
		return err
	}

	if err := transferAdmin(stranger, successor.Address()); !ErrAdminOnly.Is(err) {
		t.Fatalf("want ErrAdminOnly, got %+v", err)
	}
	if err := transferAdmin(env.admin, env.admin.Address()); !ErrSelfTransfer.Is(err) {
		t.Fatalf("want ErrSelfTransfer, got %+v", err)
	}
	if err := transferAdmin(env.admin, ModuleCondition().Address()); !ErrInvalidTarget.Is(err) {
		t.Fatalf("want ErrInvalidTarget, got %+v", err)
	}

	require.NoError(t, transferAdmin(env.admin, successor.Address()))
	conf, err := loadConf(env.db)
	require.NoError(t, err)
	assert.Equal(t, successor.Address(), conf.Owner)

	// The old administrator lost all power.
	if err := transferAdmin(env.admin, stranger.Address()); !ErrAdminOnly.Is(err) {
		t.Fatalf("want ErrAdminOnly, got %+v", err)
	}
}
