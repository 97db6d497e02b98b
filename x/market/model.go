package market

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
)

const (
	// maxURISize is the longest accepted token URI, in bytes.
	maxURISize = 256

	// maxRoyaltyBps caps the creator royalty at 10%.
	maxRoyaltyBps = 1000

	// royaltyDenominator expresses basis points.
	royaltyDenominator = 10000
)

// Token is a unique asset tracked by the marketplace. Tokens are never
// deleted, only their owner changes.
type Token struct {
	// Owner is the address currently holding the token.
	Owner bazaar.Address `json:"owner"`
	// Creator is the address that minted the token. Immutable.
	Creator bazaar.Address `json:"creator"`
	// URI points to the asset content. Opaque to the ledger.
	URI string `json:"uri"`
	// RoyaltyBps is the creator cut on every sale, in basis points.
	RoyaltyBps uint32 `json:"royalty_bps"`
}

var _ orm.Model = (*Token)(nil)

// Validate ensures the token is well formed.
func (t *Token) Validate() error {
	if err := t.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := t.Creator.Validate(); err != nil {
		return errors.Wrap(err, "creator")
	}
	if err := validateURI(t.URI); err != nil {
		return err
	}
	if t.RoyaltyBps > maxRoyaltyBps {
		return errors.Wrapf(ErrInvalidRoyalty, "%d basis points", t.RoyaltyBps)
	}
	return nil
}

// Copy returns a deep copy of this token.
func (t *Token) Copy() orm.CloneableData {
	return &Token{
		Owner:      append(bazaar.Address(nil), t.Owner...),
		Creator:    append(bazaar.Address(nil), t.Creator...),
		URI:        t.URI,
		RoyaltyBps: t.RoyaltyBps,
	}
}

// Marshal serializes the token for persistence.
func (t *Token) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(t)
}

// Unmarshal restores the token from its serialized form.
func (t *Token) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, t)
}

// Listing is an open offer to sell a token at a fixed price. It is keyed
// by the token ID, so there is at most one per token.
type Listing struct {
	// Seller is the token owner at the time of listing. Settlement
	// re-validates it against the token record.
	Seller bazaar.Address `json:"seller"`
	// Price is the full amount the buyer pays.
	Price coin.Coin `json:"price"`
}

var _ orm.Model = (*Listing)(nil)

// Validate ensures the listing is well formed.
func (l *Listing) Validate() error {
	if err := l.Seller.Validate(); err != nil {
		return errors.Wrap(err, "seller")
	}
	if !l.Price.IsPositive() {
		return errors.Wrapf(ErrInvalidPrice, "%s", l.Price)
	}
	if err := l.Price.Validate(); err != nil {
		return errors.Wrap(ErrInvalidPrice, err.Error())
	}
	return nil
}

// Copy returns a deep copy of this listing.
func (l *Listing) Copy() orm.CloneableData {
	return &Listing{
		Seller: append(bazaar.Address(nil), l.Seller...),
		Price:  l.Price.Clone(),
	}
}

// Marshal serializes the listing for persistence.
func (l *Listing) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(l)
}

// Unmarshal restores the listing from its serialized form.
func (l *Listing) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, l)
}

// tokenSeq issues token IDs. It starts at 1 and never reuses a value.
var tokenSeq = orm.NewSequence("market", orm.SeqID)

// NewTokenBucket returns a bucket for keeping tokens, with IDs assigned
// by the package sequence.
func NewTokenBucket() orm.ModelBucket {
	return orm.NewModelBucket("market", &Token{},
		orm.WithIDSequence(tokenSeq))
}

// LatestTokenID returns the most recently issued token ID, so clients can
// learn what the next mint will produce. Zero when nothing was minted yet.
func LatestTokenID(db bazaar.ReadOnlyKVStore) (int64, error) {
	latest, _, err := tokenSeq.Latest(db)
	return latest, err
}

// NewListingBucket returns a bucket for keeping listings, keyed by the
// token ID.
func NewListingBucket() orm.ModelBucket {
	return orm.NewModelBucket("listing", &Listing{})
}

func validateURI(uri string) error {
	if len(uri) == 0 {
		return errors.Wrap(ErrInvalidURI, "empty")
	}
	if len(uri) > maxURISize {
		return errors.Wrapf(ErrInvalidURI, "%d bytes", len(uri))
	}
	return nil
}

// validateTokenID ensures the ID has the exact form the sequence issues.
func validateTokenID(id []byte) error {
	if len(id) != 8 {
		return errors.Wrapf(ErrInvalidToken, "ID must be 8 bytes, got %d", len(id))
	}
	return nil
}
