package cash

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
)

// BucketName is where we store the balances.
const BucketName = "cash"

// Set holds the coins of a single wallet.
type Set struct {
	Coins coin.Coins `json:"coins"`
}

var _ orm.CloneableData = (*Set)(nil)

// Validate requires that all coins are sorted and positive.
func (s *Set) Validate() error {
	return s.Coins.Validate()
}

// Copy makes a new set with the same coins.
func (s *Set) Copy() orm.CloneableData {
	return &Set{
		Coins: s.Coins.Clone(),
	}
}

// Marshal serializes the set for persistence.
func (s *Set) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(s)
}

// Unmarshal restores the set from its serialized form.
func (s *Set) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, s)
}

// Wallet is the actual object that we pass around in our code. It
// contains a set of coins as well as the address. It is connected to the
// Bucket to easily manipulate state.
//
// Wallet is a type-safe wrapper around orm.SimpleObj.
type Wallet struct {
	key   []byte
	value *Set
}

var _ orm.Object = (*Wallet)(nil)

// NewWallet creates an empty wallet with this address.
func NewWallet(key bazaar.Address) *Wallet {
	return &Wallet{
		key:   key,
		value: new(Set),
	}
}

// WalletWith creates a wallet with a set of coins.
func WalletWith(key bazaar.Address, coins ...*coin.Coin) (*Wallet, error) {
	w := NewWallet(key)
	for _, c := range coins {
		if c == nil {
			continue
		}
		if err := w.Add(*c); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Value gets the value stored in the object.
func (w Wallet) Value() bazaar.Persistent {
	return w.value
}

// Key returns the key to store the object under.
func (w Wallet) Key() []byte {
	return w.key
}

// Validate makes sure the fields aren't empty.
// And delegates to the value validator if present.
func (w Wallet) Validate() error {
	if len(w.key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "missing key")
	}
	return w.value.Validate()
}

// SetKey may be used to update the wallet key.
func (w *Wallet) SetKey(key []byte) {
	w.key = key
}

// Clone will make a copy of this object.
func (w *Wallet) Clone() orm.Object {
	res := &Wallet{
		value: w.value.Copy().(*Set),
	}
	// only copy key if non-nil
	if len(w.key) > 0 {
		res.key = append([]byte(nil), w.key...)
	}
	return res
}

// Coins returns the coins stored in the wallet.
func (w Wallet) Coins() coin.Coins {
	return w.value.Coins
}

// Add modifies the wallet to add coin c.
func (w *Wallet) Add(c coin.Coin) error {
	cs, err := w.Coins().Add(c)
	if err != nil {
		return err
	}
	w.value.Coins = cs
	return nil
}

// Subtract modifies the wallet to remove coin c.
func (w *Wallet) Subtract(c coin.Coin) error {
	cs, err := w.Coins().Subtract(c)
	if err != nil {
		return err
	}
	w.value.Coins = cs
	return nil
}

// Bucket is a type-safe wrapper around orm.Bucket.
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a cash.Bucket with the default name.
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, NewWallet(nil)),
	}
}

// Get returns the wallet stored under the address, or nil if none exists.
func (b Bucket) Get(db bazaar.ReadOnlyKVStore, key bazaar.Address) (*Wallet, error) {
	obj, err := b.Bucket.Get(db, key)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	return obj.(*Wallet), nil
}

// Save persists the wallet.
func (b Bucket) Save(db bazaar.KVStore, value *Wallet) error {
	return b.Bucket.Save(db, value)
}

// GetOrCreate returns the wallet stored under the address, creating an
// empty one if none exists yet.
func (b Bucket) GetOrCreate(db bazaar.ReadOnlyKVStore, key bazaar.Address) (*Wallet, error) {
	wallet, err := b.Get(db, key)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		wallet = NewWallet(key)
	}
	return wallet, nil
}
