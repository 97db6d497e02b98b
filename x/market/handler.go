package market

import (
	"fmt"
	"strconv"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/gconf"
	"github.com/iov-one/bazaar/orm"
	"github.com/iov-one/bazaar/x"
	"github.com/iov-one/bazaar/x/cash"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	mintTokenCost     int64 = 150
	listTokenCost     int64 = 100
	cancelListingCost int64 = 0
	buyTokenCost      int64 = 300
	transferCost      int64 = 100
)

// RegisterRoutes will instantiate and register
// all handlers in this package.
func RegisterRoutes(r bazaar.Registry, auth x.Authenticator, control cash.Controller) {
	tokens := NewTokenBucket()
	listings := NewListingBucket()

	r.Handle(&MintTokenMsg{}, MintTokenHandler{auth: auth, tokens: tokens})
	r.Handle(&ListTokenMsg{}, ListTokenHandler{auth: auth, tokens: tokens, listings: listings})
	r.Handle(&CancelListingMsg{}, CancelListingHandler{auth: auth, tokens: tokens, listings: listings})
	r.Handle(&BuyTokenMsg{}, BuyTokenHandler{auth: auth, tokens: tokens, listings: listings, bank: control})
	r.Handle(&TransferTokenMsg{}, TransferTokenHandler{auth: auth, tokens: tokens})
	r.Handle(&TransferAdminMsg{}, TransferAdminHandler{auth: auth})
}

// RegisterQuery will register the token bucket as "/tokens" and the
// listing bucket as "/listings".
func RegisterQuery(qr bazaar.QueryRouter) {
	NewTokenBucket().Register("tokens", qr)
	NewListingBucket().Register("listings", qr)
}

// MintTokenHandler creates tokens.
type MintTokenHandler struct {
	auth   x.Authenticator
	tokens orm.ModelBucket
}

var _ bazaar.Handler = MintTokenHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h MintTokenHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{GasAllocated: mintTokenCost}, nil
}

// Deliver creates the token and returns its ID as the result data.
func (h MintTokenHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, creator, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	token := &Token{
		Owner:      creator,
		Creator:    creator,
		URI:        msg.URI,
		RoyaltyBps: msg.RoyaltyBps,
	}
	key, err := h.tokens.Put(db, nil, token)
	if err != nil {
		return nil, errors.Wrap(err, "cannot store token")
	}

	res := &bazaar.DeliverResult{
		Data: key,
		Tags: []common.KVPair{
			{Key: []byte("token"), Value: []byte(fmt.Sprintf("%x", key))},
			{Key: []byte("creator"), Value: []byte(creator.String())},
			{Key: []byte("royalty"), Value: []byte(strconv.FormatUint(uint64(msg.RoyaltyBps), 10))},
		},
	}
	return res, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h MintTokenHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*MintTokenMsg, bazaar.Address, error) {
	var msg MintTokenMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return &msg, signer.Address(), nil
}

// ListTokenHandler opens listings.
type ListTokenHandler struct {
	auth     x.Authenticator
	tokens   orm.ModelBucket
	listings orm.ModelBucket
}

var _ bazaar.Handler = ListTokenHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h ListTokenHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{GasAllocated: listTokenCost}, nil
}

// Deliver writes the listing, silently replacing a previous one.
func (h ListTokenHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, token, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	listing := &Listing{
		Seller: token.Owner,
		Price:  msg.Price,
	}
	if _, err := h.listings.Put(db, msg.TokenID, listing); err != nil {
		return nil, errors.Wrap(err, "cannot store listing")
	}

	res := &bazaar.DeliverResult{
		Tags: []common.KVPair{
			{Key: []byte("token"), Value: []byte(fmt.Sprintf("%x", msg.TokenID))},
			{Key: []byte("price"), Value: []byte(msg.Price.String())},
		},
	}
	return res, nil
}

// validate loads the token and ensures the signer is its current owner.
func (h ListTokenHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*ListTokenMsg, *Token, error) {
	var msg ListTokenMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, err
	}
	if msg.Price.Ticker != conf.Ticker {
		return nil, nil, errors.Wrapf(ErrInvalidPrice, "market currency is %s", conf.Ticker)
	}

	var token Token
	if err := h.tokens.One(db, msg.TokenID, &token); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, nil, errors.Wrapf(ErrInvalidToken, "token %x", msg.TokenID)
		}
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, token.Owner) {
		return nil, nil, errors.Wrapf(ErrNotOwner, "token %x", msg.TokenID)
	}
	return &msg, &token, nil
}

// CancelListingHandler withdraws listings.
type CancelListingHandler struct {
	auth     x.Authenticator
	tokens   orm.ModelBucket
	listings orm.ModelBucket
}

var _ bazaar.Handler = CancelListingHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CancelListingHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{GasAllocated: cancelListingCost}, nil
}

// Deliver removes the listing.
func (h CancelListingHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if err := h.listings.Delete(db, msg.TokenID); err != nil {
		return nil, errors.Wrap(err, "cannot delete listing")
	}

	res := &bazaar.DeliverResult{
		Tags: []common.KVPair{
			{Key: []byte("token"), Value: []byte(fmt.Sprintf("%x", msg.TokenID))},
		},
	}
	return res, nil
}

// validate ensures the token exists, loads the listing and ensures the
// signer is the recorded seller.
func (h CancelListingHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*CancelListingMsg, error) {
	var msg CancelListingMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	var token Token
	if err := h.tokens.One(db, msg.TokenID, &token); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrapf(ErrInvalidToken, "token %x", msg.TokenID)
		}
		return nil, err
	}

	var listing Listing
	if err := h.listings.One(db, msg.TokenID, &listing); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrapf(ErrNoListing, "token %x", msg.TokenID)
		}
		return nil, err
	}
	if !h.auth.HasAddress(ctx, listing.Seller) {
		return nil, errors.Wrapf(ErrNotOwner, "token %x", msg.TokenID)
	}
	return &msg, nil
}

// BuyTokenHandler settles purchases.
type BuyTokenHandler struct {
	auth     x.Authenticator
	tokens   orm.ModelBucket
	listings orm.ModelBucket
	bank     cash.Controller
}

var _ bazaar.Handler = BuyTokenHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h BuyTokenHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{GasAllocated: buyTokenCost}, nil
}

// Deliver executes the settlement. The royalty payment, the seller
// payment and the ownership move form one unit: the surrounding savepoint
// discards all writes if any leg fails.
func (h BuyTokenHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, listing, token, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	buyer := x.MainSigner(ctx, h.auth).Address()

	royalty, payout := splitPrice(listing.Price, token.RoyaltyBps)

	if royalty.IsPositive() {
		if err := h.bank.MoveCoins(db, buyer, token.Creator, royalty); err != nil {
			return nil, errors.Wrap(err, "royalty payment")
		}
	}
	if err := h.bank.MoveCoins(db, buyer, listing.Seller, payout); err != nil {
		return nil, errors.Wrap(err, "seller payment")
	}
	if err := moveToken(db, h.tokens, msg.TokenID, token, buyer); err != nil {
		return nil, err
	}
	if err := h.listings.Delete(db, msg.TokenID); err != nil {
		return nil, errors.Wrap(err, "cannot delete listing")
	}

	res := &bazaar.DeliverResult{
		Tags: []common.KVPair{
			{Key: []byte("token"), Value: []byte(fmt.Sprintf("%x", msg.TokenID))},
			{Key: []byte("buyer"), Value: []byte(buyer.String())},
			{Key: []byte("seller"), Value: []byte(listing.Seller.String())},
			{Key: []byte("price"), Value: []byte(listing.Price.String())},
			{Key: []byte("royalty"), Value: []byte(royalty.String())},
		},
	}
	return res, nil
}

// validate loads the listing and the token and re-validates that the
// recorded seller still owns the token. A listing that survived an
// out-of-band ownership change must never settle.
func (h BuyTokenHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*BuyTokenMsg, *Listing, *Token, error) {
	var msg BuyTokenMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}

	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}

	var listing Listing
	if err := h.listings.One(db, msg.TokenID, &listing); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, nil, nil, errors.Wrapf(ErrNoListing, "token %x", msg.TokenID)
		}
		return nil, nil, nil, err
	}

	var token Token
	if err := h.tokens.One(db, msg.TokenID, &token); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, nil, nil, errors.Wrapf(ErrInvalidToken, "token %x", msg.TokenID)
		}
		return nil, nil, nil, err
	}

	if !token.Owner.Equals(listing.Seller) {
		return nil, nil, nil, errors.Wrapf(ErrNotOwner, "seller no longer owns token %x", msg.TokenID)
	}
	return &msg, &listing, &token, nil
}

// TransferTokenHandler moves tokens without a sale.
type TransferTokenHandler struct {
	auth   x.Authenticator
	tokens orm.ModelBucket
}

var _ bazaar.Handler = TransferTokenHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h TransferTokenHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{GasAllocated: transferCost}, nil
}

// Deliver reassigns the token. Any open listing is left in place; it will
// fail the ownership re-validation at settlement.
func (h TransferTokenHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, token, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	oldOwner := token.Owner
	if err := moveToken(db, h.tokens, msg.TokenID, token, msg.NewOwner); err != nil {
		return nil, err
	}

	res := &bazaar.DeliverResult{
		Tags: []common.KVPair{
			{Key: []byte("token"), Value: []byte(fmt.Sprintf("%x", msg.TokenID))},
			{Key: []byte("from"), Value: []byte(oldOwner.String())},
			{Key: []byte("to"), Value: []byte(msg.NewOwner.String())},
		},
	}
	return res, nil
}

// validate loads the token and ensures the signer is its current owner.
func (h TransferTokenHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*TransferTokenMsg, *Token, error) {
	var msg TransferTokenMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	var token Token
	if err := h.tokens.One(db, msg.TokenID, &token); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, nil, errors.Wrapf(ErrInvalidToken, "token %x", msg.TokenID)
		}
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, token.Owner) {
		return nil, nil, errors.Wrapf(ErrNotOwner, "token %x", msg.TokenID)
	}
	if token.Owner.Equals(msg.NewOwner) {
		return nil, nil, errors.Wrapf(ErrSelfTransfer, "token %x", msg.TokenID)
	}
	return &msg, &token, nil
}

// TransferAdminHandler hands over the administrator role.
type TransferAdminHandler struct {
	auth x.Authenticator
}

var _ bazaar.Handler = TransferAdminHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h TransferAdminHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{GasAllocated: transferCost}, nil
}

// Deliver replaces the administrator in the configuration.
func (h TransferAdminHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	oldAdmin := conf.Owner
	conf.Owner = msg.NewAdmin
	if err := gconf.Save(db, packageName, conf); err != nil {
		return nil, errors.Wrap(err, "save configuration")
	}

	res := &bazaar.DeliverResult{
		Tags: []common.KVPair{
			{Key: []byte("admin"), Value: []byte(msg.NewAdmin.String())},
			{Key: []byte("previous"), Value: []byte(oldAdmin.String())},
		},
	}
	return res, nil
}

// validate loads the configuration and ensures the signer is the current
// administrator and the target is allowed.
func (h TransferAdminHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*TransferAdminMsg, *Configuration, error) {
	var msg TransferAdminMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, conf.Owner) {
		return nil, nil, errors.Wrap(ErrAdminOnly, "administrator signature missing")
	}
	if conf.Owner.Equals(msg.NewAdmin) {
		return nil, nil, errors.Wrap(ErrSelfTransfer, "already the administrator")
	}
	return &msg, conf, nil
}
