package cash

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from the genesis file.
type GenesisAccount struct {
	Address bazaar.Address `json:"address"`
	Coins   coin.Coins     `json:"coins"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file.
type Initializer struct{}

var _ bazaar.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database.
func (Initializer) FromGenesis(opts bazaar.Options, kv bazaar.KVStore) error {
	accts := []GenesisAccount{}
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	bucket := NewBucket()
	for _, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return err
		}
		wallet, err := WalletWith(acct.Address, acct.Coins...)
		if err != nil {
			return err
		}
		if err := bucket.Save(kv, wallet); err != nil {
			return err
		}
	}
	return nil
}
