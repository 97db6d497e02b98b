package cash

import (
	"testing"

	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/store"
	"github.com/iov-one/bazaar/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndBalance(t *testing.T) {
	db := store.MemStore()
	control := NewController(NewBucket())
	addr := weavetest.NewCondition().Address()

	require.NoError(t, control.IssueCoins(db, addr, coin.NewCoin(100, "IOV")))

	balance, err := control.Balance(db, addr)
	require.NoError(t, err)
	assert.True(t, balance.Contains(coin.NewCoin(100, "IOV")))
}

func TestBalanceUnknownAccount(t *testing.T) {
	db := store.MemStore()
	control := NewController(NewBucket())
	addr := weavetest.NewCondition().Address()

	if _, err := control.Balance(db, addr); !errors.ErrEmpty.Is(err) {
		t.Fatalf("want ErrEmpty, got %+v", err)
	}
}

func TestMoveCoins(t *testing.T) {
	db := store.MemStore()
	control := NewController(NewBucket())
	src := weavetest.NewCondition().Address()
	dest := weavetest.NewCondition().Address()

	require.NoError(t, control.IssueCoins(db, src, coin.NewCoin(100, "IOV")))
	require.NoError(t, control.MoveCoins(db, src, dest, coin.NewCoin(30, "IOV")))

	senderBalance, err := control.Balance(db, src)
	require.NoError(t, err)
	assert.True(t, senderBalance.Contains(coin.NewCoin(70, "IOV")))
	assert.False(t, senderBalance.Contains(coin.NewCoin(71, "IOV")))

	destBalance, err := control.Balance(db, dest)
	require.NoError(t, err)
	assert.True(t, destBalance.Contains(coin.NewCoin(30, "IOV")))
}

func TestMoveCoinsFailures(t *testing.T) {
	db := store.MemStore()
	control := NewController(NewBucket())
	src := weavetest.NewCondition().Address()
	dest := weavetest.NewCondition().Address()

	// No wallet at all.
	if err := control.MoveCoins(db, src, dest, coin.NewCoin(10, "IOV")); !errors.ErrEmpty.Is(err) {
		t.Fatalf("want ErrEmpty, got %+v", err)
	}

	require.NoError(t, control.IssueCoins(db, src, coin.NewCoin(5, "IOV")))

	// Insufficient funds.
	if err := control.MoveCoins(db, src, dest, coin.NewCoin(10, "IOV")); !errors.ErrAmount.Is(err) {
		t.Fatalf("want ErrAmount, got %+v", err)
	}

	// Non-positive amount.
	if err := control.MoveCoins(db, src, dest, coin.NewCoin(0, "IOV")); !errors.ErrAmount.Is(err) {
		t.Fatalf("want ErrAmount, got %+v", err)
	}

	// Failed moves must not change any balance.
	balance, err := control.Balance(db, src)
	require.NoError(t, err)
	assert.True(t, balance.Contains(coin.NewCoin(5, "IOV")))
}
