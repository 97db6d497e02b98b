package coin

import (
	"sort"

	"github.com/iov-one/bazaar/errors"
)

// Coins is a set of coins, one per currency, sorted by ticker and holding
// no zero amounts. Use the functions in this package to maintain those
// invariants.
type Coins []*Coin

// NewCoins combines any number of coins into a normalized set, merging
// duplicate currencies.
func NewCoins(cs ...Coin) (Coins, error) {
	var set Coins
	for _, c := range cs {
		var err error
		if set, err = set.Add(c); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// Clone returns an independent copy of the set.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make(Coins, len(cs))
	for i, c := range cs {
		cpy := c.Clone()
		res[i] = &cpy
	}
	return res
}

// Add returns a new set with the given coin merged in. Zero results are
// removed from the set.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs, nil
	}

	idx := sort.Search(len(cs), func(i int) bool {
		return cs[i].Ticker >= c.Ticker
	})

	// No coin of this currency yet.
	if idx == len(cs) || cs[idx].Ticker != c.Ticker {
		if c.Amount < 0 {
			return nil, errors.Wrapf(errors.ErrAmount, "negative balance: %s", c.String())
		}
		res := make(Coins, 0, len(cs)+1)
		res = append(res, cs[:idx]...)
		res = append(res, &c)
		res = append(res, cs[idx:]...)
		return res, nil
	}

	sum, err := cs[idx].Add(c)
	if err != nil {
		// Allow the transient zero, reject everything else.
		if cs[idx].Amount+c.Amount != 0 {
			return nil, err
		}
		sum = Coin{Ticker: c.Ticker}
	}

	res := cs.Clone()
	if sum.IsZero() {
		return append(res[:idx], res[idx+1:]...), nil
	}
	res[idx] = &sum
	return res, nil
}

// Subtract returns a new set with the given coin removed. Fails if the set
// would go negative.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	return cs.Add(c.Negative())
}

// Contains returns true if the set holds at least the given coin.
func (cs Coins) Contains(c Coin) bool {
	for _, have := range cs {
		if have.Ticker == c.Ticker {
			return have.Amount >= c.Amount
		}
	}
	return c.Amount <= 0
}

// IsPositive returns true if there is at least one coin in the set and all
// coins are positive.
func (cs Coins) IsPositive() bool {
	if len(cs) == 0 {
		return false
	}
	for _, c := range cs {
		if !c.IsPositive() {
			return false
		}
	}
	return true
}

// Validate ensures the set is sorted, has unique currencies, and every
// coin validates.
func (cs Coins) Validate() error {
	last := ""
	for _, c := range cs {
		if err := c.Validate(); err != nil {
			return err
		}
		if c.Ticker <= last {
			return errors.Wrapf(errors.ErrState, "coins not sorted: %s", c.Ticker)
		}
		last = c.Ticker
	}
	return nil
}
