package app

import (
	amino "github.com/tendermint/go-amino"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

var cdc = amino.NewCodec()

// ResultSet is a list of binary results, so a query can return 0 to N
// entries while keys and values stay aligned.
type ResultSet struct {
	Results [][]byte
}

// Marshal serializes the result set.
func (r *ResultSet) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(r)
}

// Unmarshal restores the result set from its serialized form.
func (r *ResultSet) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, r)
}

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models.
func ResultsFromKeys(models []bazaar.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models.
func ResultsFromValues(models []bazaar.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes them a consistent whole again.
func JoinResults(keys, values *ResultSet) ([]bazaar.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrap(errors.ErrInput, "mismatched result set size")
	}
	mods := make([]bazaar.Model, len(kref))
	for i := range mods {
		mods[i] = bazaar.Model{
			Key:   kref[i],
			Value: vref[i],
		}
	}
	return mods, nil
}

// UnmarshalOneResult will parse a resultset, and
// if it is not empty, unmarshal the first result into o.
func UnmarshalOneResult(bz []byte, o bazaar.Persistent) error {
	var res ResultSet
	if err := res.Unmarshal(bz); err != nil {
		return err
	}

	// no results, do nothing
	if len(res.Results) == 0 {
		return nil
	}
	return o.Unmarshal(res.Results[0])
}
