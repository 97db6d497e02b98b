package std

import (
	amino "github.com/tendermint/go-amino"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/x/cash"
	"github.com/iov-one/bazaar/x/market"
)

// cdc knows every message that can travel inside a transaction.
var cdc = amino.NewCodec()

func init() {
	cdc.RegisterInterface((*bazaar.Msg)(nil), nil)
	cdc.RegisterConcrete(&cash.SendMsg{}, "bazaar/cash/send", nil)
	cdc.RegisterConcrete(&market.MintTokenMsg{}, "bazaar/market/mint", nil)
	cdc.RegisterConcrete(&market.ListTokenMsg{}, "bazaar/market/list", nil)
	cdc.RegisterConcrete(&market.CancelListingMsg{}, "bazaar/market/cancel", nil)
	cdc.RegisterConcrete(&market.BuyTokenMsg{}, "bazaar/market/buy", nil)
	cdc.RegisterConcrete(&market.TransferTokenMsg{}, "bazaar/market/transfer", nil)
	cdc.RegisterConcrete(&market.TransferAdminMsg{}, "bazaar/market/transfer_admin", nil)
}
