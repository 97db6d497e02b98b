package coin

import (
	"fmt"
	"regexp"

	"github.com/iov-one/bazaar/errors"
)

// IsCC is the RegExp to ensure valid currency codes.
var IsCC = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

// MaxAmount is the largest amount a single coin may hold.
const MaxAmount int64 = 999999999999999 // 10^15-1

// Coin is an amount of a given currency. The ledger settles in whole,
// indivisible units, so there is no fractional part.
type Coin struct {
	// Ticker is the currency code, 3-4 upper-case letters.
	Ticker string
	// Amount is a whole number of currency units. It may be negative
	// inside computations, but never when persisted.
	Amount int64
}

// NewCoin creates a coin with the given amount and currency code.
func NewCoin(amount int64, ticker string) Coin {
	return Coin{
		Ticker: ticker,
		Amount: amount,
	}
}

// ID returns the ticker of this currency.
func (c Coin) ID() string {
	return c.Ticker
}

// IsZero returns true if the amount is zero.
func (c Coin) IsZero() bool {
	return c.Amount == 0
}

// IsPositive returns true if the amount is greater than zero.
func (c Coin) IsPositive() bool {
	return c.Amount > 0
}

// IsNonNegative returns true if the amount is zero or greater.
func (c Coin) IsNonNegative() bool {
	return c.Amount >= 0
}

// IsGTE returns true if c is the same currency and not less than o.
func (c Coin) IsGTE(o Coin) bool {
	if !c.SameType(o) {
		return false
	}
	return c.Amount >= o.Amount
}

// SameType returns true if both coins use the same currency code.
func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// Equals returns true if both coins are identical.
func (c Coin) Equals(o Coin) bool {
	return c.Ticker == o.Ticker && c.Amount == o.Amount
}

// Clone provides an independent copy of a coin.
func (c Coin) Clone() Coin {
	return Coin{
		Ticker: c.Ticker,
		Amount: c.Amount,
	}
}

// Add combines two coins of the same currency. It returns an error on a
// currency mismatch or if the result is out of range.
func (c Coin) Add(o Coin) (Coin, error) {
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrAmount, "adding %s to %s", o.Ticker, c.Ticker)
	}
	c.Amount += o.Amount
	if err := c.Validate(); err != nil {
		return Coin{}, err
	}
	return c, nil
}

// Subtract removes the amount of o from c. It returns an error on a
// currency mismatch or if the result is out of range (including becoming
// negative).
func (c Coin) Subtract(o Coin) (Coin, error) {
	return c.Add(o.Negative())
}

// Negative returns the same coin with the opposite sign on the amount.
func (c Coin) Negative() Coin {
	return Coin{
		Ticker: c.Ticker,
		Amount: -c.Amount,
	}
}

// String provides a human readable representation of the coin.
func (c Coin) String() string {
	return fmt.Sprintf("%d %s", c.Amount, c.Ticker)
}

// Validate ensures the coin is in the expected range and the ticker is
// well formed. Negative amounts do not validate, as they may only appear
// inside computations, never at rest.
func (c Coin) Validate() error {
	if !IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrAmount, "invalid currency: %s", c.Ticker)
	}
	if c.Amount < 0 || c.Amount > MaxAmount {
		return errors.Wrapf(errors.ErrOverflow, "amount: %d", c.Amount)
	}
	return nil
}

// Marshal serializes the coin for persistence.
func (c *Coin) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

// Unmarshal restores the coin from its serialized form.
func (c *Coin) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}

// IsEmpty returns true on a nil coin or one with a zero amount.
func IsEmpty(c *Coin) bool {
	return c == nil || c.IsZero()
}
