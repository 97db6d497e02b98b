package market

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
)

// Ensure we implement the Msg interface
var (
	_ bazaar.Msg = (*MintTokenMsg)(nil)
	_ bazaar.Msg = (*ListTokenMsg)(nil)
	_ bazaar.Msg = (*CancelListingMsg)(nil)
	_ bazaar.Msg = (*BuyTokenMsg)(nil)
	_ bazaar.Msg = (*TransferTokenMsg)(nil)
	_ bazaar.Msg = (*TransferAdminMsg)(nil)
)

// MintTokenMsg creates a new token. The main signer becomes both the
// owner and the creator.
type MintTokenMsg struct {
	// URI points to the asset content.
	URI string `json:"uri"`
	// RoyaltyBps is the creator cut on every sale, in basis points.
	RoyaltyBps uint32 `json:"royalty_bps"`
}

// Path returns the routing path for this message.
func (MintTokenMsg) Path() string {
	return "market/mint"
}

// Validate makes sure that this is sensible.
func (m *MintTokenMsg) Validate() error {
	if err := validateURI(m.URI); err != nil {
		return err
	}
	if m.RoyaltyBps > maxRoyaltyBps {
		return errors.Wrapf(ErrInvalidRoyalty, "%d basis points", m.RoyaltyBps)
	}
	return nil
}

// Marshal serializes the message for transport.
func (m *MintTokenMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

// Unmarshal restores the message from its serialized form.
func (m *MintTokenMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// ListTokenMsg puts a token up for sale at a fixed price. Listing an
// already listed token silently replaces the previous offer.
type ListTokenMsg struct {
	// TokenID references the token to sell.
	TokenID []byte `json:"token_id"`
	// Price is the full amount the buyer pays.
	Price coin.Coin `json:"price"`
}

// Path returns the routing path for this message.
func (ListTokenMsg) Path() string {
	return "market/list"
}

// Validate makes sure that this is sensible.
func (m *ListTokenMsg) Validate() error {
	if err := validateTokenID(m.TokenID); err != nil {
		return err
	}
	if !m.Price.IsPositive() {
		return errors.Wrapf(ErrInvalidPrice, "%s", m.Price)
	}
	if err := m.Price.Validate(); err != nil {
		return errors.Wrap(ErrInvalidPrice, err.Error())
	}
	return nil
}

// Marshal serializes the message for transport.
func (m *ListTokenMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

// Unmarshal restores the message from its serialized form.
func (m *ListTokenMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// CancelListingMsg withdraws an open listing. Only the recorded seller
// may cancel.
type CancelListingMsg struct {
	// TokenID references the listed token.
	TokenID []byte `json:"token_id"`
}

// Path returns the routing path for this message.
func (CancelListingMsg) Path() string {
	return "market/cancel"
}

// Validate makes sure that this is sensible.
func (m *CancelListingMsg) Validate() error {
	return validateTokenID(m.TokenID)
}

// Marshal serializes the message for transport.
func (m *CancelListingMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

// Unmarshal restores the message from its serialized form.
func (m *CancelListingMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// BuyTokenMsg purchases a listed token at the listed price. The main
// signer pays and becomes the new owner.
type BuyTokenMsg struct {
	// TokenID references the listed token.
	TokenID []byte `json:"token_id"`
}

// Path returns the routing path for this message.
func (BuyTokenMsg) Path() string {
	return "market/buy"
}

// Validate makes sure that this is sensible.
func (m *BuyTokenMsg) Validate() error {
	return validateTokenID(m.TokenID)
}

// Marshal serializes the message for transport.
func (m *BuyTokenMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

// Unmarshal restores the message from its serialized form.
func (m *BuyTokenMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// TransferTokenMsg hands a token over to another address without a sale.
// Open listings are left in place and fail later at settlement.
type TransferTokenMsg struct {
	// TokenID references the token to transfer.
	TokenID []byte `json:"token_id"`
	// NewOwner receives the token.
	NewOwner bazaar.Address `json:"new_owner"`
}

// Path returns the routing path for this message.
func (TransferTokenMsg) Path() string {
	return "market/transfer"
}

// Validate makes sure that this is sensible.
func (m *TransferTokenMsg) Validate() error {
	if err := validateTokenID(m.TokenID); err != nil {
		return err
	}
	return validTransferTarget(m.NewOwner)
}

// Marshal serializes the message for transport.
func (m *TransferTokenMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

// Unmarshal restores the message from its serialized form.
func (m *TransferTokenMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// TransferAdminMsg hands the administrator role over to another address.
type TransferAdminMsg struct {
	// NewAdmin receives the administrator role.
	NewAdmin bazaar.Address `json:"new_admin"`
}

// Path returns the routing path for this message.
func (TransferAdminMsg) Path() string {
	return "market/transfer_admin"
}

// Validate makes sure that this is sensible.
func (m *TransferAdminMsg) Validate() error {
	return validTransferTarget(m.NewAdmin)
}

// Marshal serializes the message for transport.
func (m *TransferAdminMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

// Unmarshal restores the message from its serialized form.
func (m *TransferAdminMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}
