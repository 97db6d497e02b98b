package cash

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
)

// CoinMover is the interface that the settlement extensions use to move
// funds between wallets.
type CoinMover interface {
	// MoveCoins removes funds from the source wallet and adds them to
	// the destination wallet.
	MoveCoins(store bazaar.KVStore, src bazaar.Address, dest bazaar.Address, amount coin.Coin) error
}

// CoinMinter is the interface for creating new funds out of thin air.
type CoinMinter interface {
	// IssueCoins increases the balance of the given wallet.
	IssueCoins(store bazaar.KVStore, dest bazaar.Address, amount coin.Coin) error
}

// Balancer is the interface for reading a wallet balance.
type Balancer interface {
	Balance(store bazaar.KVStore, addr bazaar.Address) (coin.Coins, error)
}

// Controller is the functionality needed by the cash handlers and by any
// extension that settles payments.
type Controller interface {
	CoinMover
	CoinMinter
	Balancer
}

// BaseController implements Controller on top of a wallet bucket.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a base controller implementation.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the coins stored under the given address. It fails with
// ErrEmpty if no wallet exists.
func (c BaseController) Balance(store bazaar.KVStore, src bazaar.Address) (coin.Coins, error) {
	wallet, err := c.bucket.Get(store, src)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, errors.Wrapf(errors.ErrEmpty, "no account %s", src)
	}
	return wallet.Coins(), nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient coins, it fails.
func (c BaseController) MoveCoins(store bazaar.KVStore, src bazaar.Address, dest bazaar.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive transfer: %s", amount.String())
	}

	sender, err := c.bucket.Get(store, src)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrEmpty, "no account %s", src)
	}
	if !sender.Coins().Contains(amount) {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds in %s", src)
	}

	// A transfer to self has no net effect. Loading the same wallet
	// twice would let the second save shadow the subtraction.
	if src.Equals(dest) {
		return nil
	}

	recipient, err := c.bucket.GetOrCreate(store, dest)
	if err != nil {
		return err
	}
	if err := sender.Subtract(amount); err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}

	if err := c.bucket.Save(store, sender); err != nil {
		return err
	}
	return c.bucket.Save(store, recipient)
}

// IssueCoins attempts to add the given amount of coins to the destination
// address. Fails if it overflows the wallet.
func (c BaseController) IssueCoins(store bazaar.KVStore, dest bazaar.Address, amount coin.Coin) error {
	recipient, err := c.bucket.GetOrCreate(store, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(store, recipient)
}
