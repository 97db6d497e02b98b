package market

import (
	"testing"

	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/store"
	"github.com/iov-one/bazaar/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenValidate(t *testing.T) {
	addr := weavetest.NewCondition().Address()

	token := Token{
		Owner:      addr,
		Creator:    addr,
		URI:        "ipfs://asset",
		RoyaltyBps: maxRoyaltyBps,
	}
	assert.NoError(t, token.Validate())

	broken := token
	broken.RoyaltyBps = maxRoyaltyBps + 1
	if err := broken.Validate(); !ErrInvalidRoyalty.Is(err) {
		t.Fatalf("want ErrInvalidRoyalty, got %+v", err)
	}

	broken = token
	broken.URI = ""
	if err := broken.Validate(); !ErrInvalidURI.Is(err) {
		t.Fatalf("want ErrInvalidURI, got %+v", err)
	}

	broken = token
	broken.Owner = nil
	assert.Error(t, broken.Validate())
}

func TestListingValidate(t *testing.T) {
	listing := Listing{
		Seller: weavetest.NewCondition().Address(),
		Price:  coin.NewCoin(100, "IOV"),
	}
	assert.NoError(t, listing.Validate())

	listing.Price = coin.NewCoin(0, "IOV")
	if err := listing.Validate(); !ErrInvalidPrice.Is(err) {
		t.Fatalf("want ErrInvalidPrice, got %+v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	db := store.MemStore()
	bucket := NewTokenBucket()
	addr := weavetest.NewCondition().Address()

	orig := &Token{
		Owner:      addr,
		Creator:    addr,
		URI:        "ipfs://asset",
		RoyaltyBps: 250,
	}
	key, err := bucket.Put(db, nil, orig)
	require.NoError(t, err)
	assert.Equal(t, weavetest.SequenceID(1), key)

	var got Token
	require.NoError(t, bucket.One(db, key, &got))
	assert.Equal(t, *orig, got)
}

func TestLatestTokenID(t *testing.T) {
	db := store.MemStore()
	bucket := NewTokenBucket()
	addr := weavetest.NewCondition().Address()

	latest, err := LatestTokenID(db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), latest)

	token := &Token{Owner: addr, Creator: addr, URI: "ipfs://asset"}
	_, err = bucket.Put(db, nil, token)
	require.NoError(t, err)

	latest, err = LatestTokenID(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), latest)
}
