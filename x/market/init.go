package market

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/gconf"
)

// Initializer fulfils the Initializer interface to load data from
// the genesis file.
type Initializer struct{}

var _ bazaar.Initializer = Initializer{}

// FromGenesis will parse the market configuration from genesis
// and save it to the database.
func (Initializer) FromGenesis(opts bazaar.Options, kv bazaar.KVStore) error {
	return gconf.InitConfig(kv, opts, packageName, &Configuration{})
}
