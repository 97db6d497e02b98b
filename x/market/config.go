package market

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/gconf"
)

// packageName keys the configuration singleton and the genesis section.
const packageName = "market"

// Configuration is the market settings singleton. There is exactly one
// administrator and one settlement currency per marketplace.
type Configuration struct {
	// Owner is the marketplace administrator.
	Owner bazaar.Address `json:"owner"`
	// Ticker is the currency all listings are priced in.
	Ticker string `json:"ticker"`
}

var _ gconf.Configuration = (*Configuration)(nil)

// Validate ensures the configuration is complete.
func (c *Configuration) Validate() error {
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if !coin.IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrInput, "invalid ticker: %q", c.Ticker)
	}
	return nil
}

// Marshal serializes the configuration for persistence.
func (c *Configuration) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

// Unmarshal restores the configuration from its serialized form.
func (c *Configuration) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, packageName, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

// ModuleCondition is the condition of the marketplace itself. Funds or
// tokens must never be parked under its address.
func ModuleCondition() bazaar.Condition {
	return bazaar.NewCondition("market", "module", []byte("marketplace"))
}

// validTransferTarget ensures an address may receive an administrative or
// token transfer. The marketplace module address is never a valid target.
func validTransferTarget(target bazaar.Address) error {
	if err := target.Validate(); err != nil {
		return errors.Wrap(ErrInvalidTarget, err.Error())
	}
	if target.Equals(ModuleCondition().Address()) {
		return errors.Wrap(ErrInvalidTarget, "marketplace module address")
	}
	return nil
}
