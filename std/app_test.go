package std

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/app"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/weavetest"
	"github.com/iov-one/bazaar/weavetest/assert"
	"github.com/iov-one/bazaar/x/cash"
	"github.com/iov-one/bazaar/x/market"
	abci "github.com/tendermint/tendermint/abci/types"
)

func newTestApp(t testing.TB) (*app.BaseApp, *weavetest.Auth, func()) {
	t.Helper()

	dir, err := ioutil.TempDir("", "bazaar-std")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}
	auth := &weavetest.Auth{}
	a, err := Application("bazaar-test", Stack(auth), TxDecoder, filepath.Join(dir, "bazaar"), true)
	if err != nil {
		os.RemoveAll(dir)
		t.Fatalf("cannot create the application: %s", err)
	}
	return a, auth, func() { os.RemoveAll(dir) }
}

func initChain(a *app.BaseApp, admin bazaar.Condition, accounts string) {
	genesis := fmt.Sprintf(`{
		"cash": [%s],
		"conf": {
			"market": {
				"owner": "%s",
				"ticker": "IOV"
			}
		}
	}`, accounts, admin.Address())
	a.InitChain(abci.RequestInitChain{
		AppStateBytes: []byte(genesis),
		ChainId:       "test-chain-1",
	})
}

func account(addr bazaar.Address, amount int64) string {
	return fmt.Sprintf(`{"address": "%s", "coins": [{"Ticker": "IOV", "Amount": %d}]}`, addr, amount)
}

// deliver signs and executes a single message through the full stack.
func deliver(t testing.TB, a *app.BaseApp, auth *weavetest.Auth, signer bazaar.Condition, msg bazaar.Msg) abci.ResponseDeliverTx {
	t.Helper()
	auth.Signer = signer
	raw, err := (&Tx{Msg: msg}).Marshal()
	assert.Nil(t, err)
	return a.DeliverTx(raw)
}

// walletCoins queries the committed balance of an address. A missing
// wallet returns nil.
func walletCoins(t testing.TB, a *app.BaseApp, addr bazaar.Address) coin.Coins {
	t.Helper()
	res := a.Query(abci.RequestQuery{Path: "/wallets", Data: addr})
	if res.Code != 0 {
		t.Fatalf("wallet query failed: %s", res.Log)
	}
	var set cash.Set
	assert.Nil(t, app.UnmarshalOneResult(res.Value, &set))
	return set.Coins
}

func TestAppMintAndQuery(t *testing.T) {
	a, auth, cleanup := newTestApp(t)
	defer cleanup()

	admin := weavetest.NewCondition()
	creator := weavetest.NewCondition()
	initChain(a, admin, "")
	assert.Equal(t, "test-chain-1", a.GetChainID())

	a.BeginBlock(abci.RequestBeginBlock{})

	res := deliver(t, a, auth, creator, &market.MintTokenMsg{
		URI:        "ipfs://asset",
		RoyaltyBps: 500,
	})
	if res.Code != 0 {
		t.Fatalf("mint failed: %s", res.Log)
	}
	assert.Equal(t, weavetest.SequenceID(1), res.Data)

	var action []byte
	for _, tag := range res.Tags {
		if string(tag.Key) == "action" {
			action = tag.Value
		}
	}
	assert.Equal(t, []byte("market/mint"), action)

	a.EndBlock(abci.RequestEndBlock{})
	cres := a.Commit()
	if len(cres.Data) == 0 {
		t.Fatal("commit must return the new app hash")
	}

	qres := a.Query(abci.RequestQuery{
		Path: "/tokens",
		Data: weavetest.SequenceID(1),
	})
	if qres.Code != 0 {
		t.Fatalf("query failed: %s", qres.Log)
	}
	var token market.Token
	assert.Nil(t, app.UnmarshalOneResult(qres.Value, &token))
	assert.Equal(t, creator.Address(), token.Owner)
	assert.Equal(t, "ipfs://asset", token.URI)
}

func TestAppFailedBuyRollsBack(t *testing.T) {
	a, auth, cleanup := newTestApp(t)
	defer cleanup()

	admin := weavetest.NewCondition()
	seller := weavetest.NewCondition()
	buyer := weavetest.NewCondition()

	initChain(a, admin, account(buyer.Address(), 100000))
	a.BeginBlock(abci.RequestBeginBlock{})

	res := deliver(t, a, auth, seller, &market.MintTokenMsg{
		URI:        "ipfs://asset",
		RoyaltyBps: 500,
	})
	assert.Equal(t, uint32(0), res.Code)
	tokenID := res.Data

	res = deliver(t, a, auth, seller, &market.ListTokenMsg{
		TokenID: tokenID,
		Price:   coin.NewCoin(1000000, "IOV"),
	})
	assert.Equal(t, uint32(0), res.Code)

	// The buyer can cover the royalty leg but not the payout leg. The
	// whole settlement must revert, including the royalty payment.
	res = deliver(t, a, auth, buyer, &market.BuyTokenMsg{TokenID: tokenID})
	if res.Code == 0 {
		t.Fatal("buy must fail on insufficient funds")
	}

	a.EndBlock(abci.RequestEndBlock{})
	a.Commit()

	buyerCoins := walletCoins(t, a, buyer.Address())
	assert.Equal(t, true, buyerCoins.Contains(coin.NewCoin(100000, "IOV")))
	assert.Equal(t, coin.Coins(nil), walletCoins(t, a, seller.Address()))

	lres := a.Query(abci.RequestQuery{Path: "/listings", Data: tokenID})
	if lres.Code != 0 {
		t.Fatalf("listing query failed: %s", lres.Log)
	}
	var listing market.Listing
	assert.Nil(t, app.UnmarshalOneResult(lres.Value, &listing))
	assert.Equal(t, seller.Address(), listing.Seller)

	tres := a.Query(abci.RequestQuery{Path: "/tokens", Data: tokenID})
	if tres.Code != 0 {
		t.Fatalf("token query failed: %s", tres.Log)
	}
	var token market.Token
	assert.Nil(t, app.UnmarshalOneResult(tres.Value, &token))
	assert.Equal(t, seller.Address(), token.Owner)
}

func TestAppRejectsSecondInit(t *testing.T) {
	a, _, cleanup := newTestApp(t)
	defer cleanup()

	admin := weavetest.NewCondition()
	initChain(a, admin, "")

	assert.Panics(t, func() {
		initChain(a, admin, "")
	})
}

func TestTxRoundTrip(t *testing.T) {
	orig := &Tx{Msg: &market.BuyTokenMsg{TokenID: weavetest.SequenceID(7)}}
	raw, err := orig.Marshal()
	assert.Nil(t, err)

	tx, err := TxDecoder(raw)
	assert.Nil(t, err)
	msg, err := tx.GetMsg()
	assert.Nil(t, err)
	assert.Equal(t, "market/buy", msg.Path())
	buy, ok := msg.(*market.BuyTokenMsg)
	if !ok {
		t.Fatalf("want a buy message, got %T", msg)
	}
	assert.Equal(t, weavetest.SequenceID(7), buy.TokenID)
}
