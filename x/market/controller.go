package market

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
)

// royaltyCut returns the creator's share of the price, rounded down.
// The computation is split in two terms so that price*bps cannot
// overflow an int64 even at the maximum coin amount.
func royaltyCut(price int64, bps uint32) int64 {
	b := int64(bps)
	return (price/royaltyDenominator)*b + (price%royaltyDenominator)*b/royaltyDenominator
}

// splitPrice divides the sale price between the creator and the seller.
// The rounding remainder always goes to the seller.
func splitPrice(price coin.Coin, bps uint32) (royalty, payout coin.Coin) {
	cut := royaltyCut(price.Amount, bps)
	royalty = coin.NewCoin(cut, price.Ticker)
	payout = coin.NewCoin(price.Amount-cut, price.Ticker)
	return royalty, payout
}

// moveToken reassigns the token to a new owner. It is the only place
// where token ownership changes.
func moveToken(db bazaar.KVStore, bucket orm.ModelBucket, tokenID []byte, token *Token, newOwner bazaar.Address) error {
	if token.Owner.Equals(newOwner) {
		return errors.Wrapf(ErrSelfTransfer, "token %x", tokenID)
	}
	token.Owner = newOwner
	if _, err := bucket.Put(db, tokenID, token); err != nil {
		return errors.Wrap(err, "cannot update token")
	}
	return nil
}
