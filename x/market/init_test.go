package market

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/store"
	"github.com/iov-one/bazaar/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesisConfiguration(t *testing.T) {
	admin := weavetest.NewCondition().Address()
	genesis := fmt.Sprintf(`{
		"market": {
			"owner": "%s",
			"ticker": "IOV"
		}
	}`, admin)
	opts := bazaar.Options{
		"conf": json.RawMessage(genesis),
	}

	db := store.MemStore()
	var ini Initializer
	require.NoError(t, ini.FromGenesis(opts, db))

	conf, err := loadConf(db)
	require.NoError(t, err)
	assert.Equal(t, admin, conf.Owner)
	assert.Equal(t, "IOV", conf.Ticker)
}

func TestGenesisConfigurationMissing(t *testing.T) {
	db := store.MemStore()
	var ini Initializer
	if err := ini.FromGenesis(bazaar.Options{}, db); err == nil {
		t.Fatal("expected missing configuration to be rejected")
	}
}

func TestGenesisConfigurationInvalid(t *testing.T) {
	opts := bazaar.Options{
		"conf": json.RawMessage(`{"market": {"owner": "", "ticker": "toolong"}}`),
	}
	db := store.MemStore()
	var ini Initializer
	if err := ini.FromGenesis(opts, db); err == nil {
		t.Fatal("expected an invalid configuration to be rejected")
	}
}
