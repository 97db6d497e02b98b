package cash

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/store"
	"github.com/iov-one/bazaar/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesisAccounts(t *testing.T) {
	addr := weavetest.NewCondition().Address()
	genesis := fmt.Sprintf(`[
		{
			"address": "%s",
			"coins": [
				{"Ticker": "IOV", "Amount": 123}
			]
		}
	]`, addr)
	opts := bazaar.Options{
		"cash": json.RawMessage(genesis),
	}

	db := store.MemStore()
	var ini Initializer
	require.NoError(t, ini.FromGenesis(opts, db))

	control := NewController(NewBucket())
	balance, err := control.Balance(db, addr)
	require.NoError(t, err)
	assert.True(t, balance.Contains(coin.NewCoin(123, "IOV")))
}

func TestGenesisRejectsBadAddress(t *testing.T) {
	opts := bazaar.Options{
		"cash": json.RawMessage(`[{"address": "0102", "coins": []}]`),
	}

	db := store.MemStore()
	var ini Initializer
	if err := ini.FromGenesis(opts, db); err == nil {
		t.Fatal("expected an invalid address to be rejected")
	}
}
