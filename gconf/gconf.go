package gconf

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// Store is a subset of a key value store functionality that this package
// requires to write data.
type Store interface {
	Set([]byte, []byte) error
}

// ReadStore is a subset of a key value store functionality that this
// package requires to read data.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// ValidMarshaler is implemented by objects that can serialize themselves
// to a binary representation and verify their own state.
type ValidMarshaler interface {
	Marshal() ([]byte, error)
	Validate() error
}

// Unmarshaler is implemented by objects that can load their state from a
// given binary representation.
type Unmarshaler interface {
	Unmarshal([]byte) error
}

// Save validates and persists the given configuration for a package.
func Save(db Store, pkg string, src ValidMarshaler) error {
	key := []byte("_c:" + pkg)
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validation: key %q", key)
	}
	raw, err := src.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal: key %q", key)
	}
	return db.Set(key, raw)
}

// Load reads the configuration of a package into dst. It fails with
// ErrNotFound if no configuration was ever stored.
func Load(db ReadStore, pkg string, dst Unmarshaler) error {
	key := []byte("_c:" + pkg)
	raw, err := db.Get(key)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "key %q", key)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "unmarshal: key %q", key)
	}
	return nil
}

// Configuration combines the interfaces that a configuration object must
// implement so that it can be initialized from the genesis.
type Configuration interface {
	ValidMarshaler
	Unmarshaler
}

// InitConfig loads a configuration declared in the genesis under the
// "conf" section and stores it in the database. The genesis entry is
// expected under the package name, for example
//
//   "conf": {
//     "mypkg": { ... }
//   }
func InitConfig(db Store, opts bazaar.Options, pkg string, conf Configuration) error {
	var confOptions bazaar.Options
	if err := opts.ReadOptions("conf", &confOptions); err != nil {
		return errors.Wrap(err, "read conf")
	}
	if confOptions[pkg] == nil {
		return errors.Wrapf(errors.ErrNotFound, "no configuration in genesis for %q package", pkg)
	}
	if err := confOptions.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "read configuration for %s", pkg)
	}
	if err := Save(db, pkg, conf); err != nil {
		return errors.Wrapf(err, "save configuration for %s", pkg)
	}
	return nil
}
