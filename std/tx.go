package std

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// Tx is the transport envelope of a single message. Authentication of
// the sender is attested by the surrounding execution environment, so
// the envelope carries nothing but the message.
type Tx struct {
	Msg bazaar.Msg `json:"msg"`
}

var _ bazaar.Tx = (*Tx)(nil)

// GetMsg returns the message carried by this transaction.
func (tx *Tx) GetMsg() (bazaar.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrState, "transaction without a message")
	}
	return tx.Msg, nil
}

// Marshal serializes the transaction for transport.
func (tx *Tx) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(tx)
}

// Unmarshal restores the transaction from its serialized form.
func (tx *Tx) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, tx)
}

// TxDecoder parses the given bytes into a Tx.
func TxDecoder(raw []byte) (bazaar.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(raw); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return tx, nil
}
