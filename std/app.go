/*
Package std wires the standard components into a runnable application.

It is a good place to get started and to see how the pieces fit
together. You can replace individual components with custom
implementations as your deployment grows.
*/
package std

import (
	"path/filepath"
	"strings"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/app"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/store/iavl"
	"github.com/iov-one/bazaar/x"
	"github.com/iov-one/bazaar/x/cash"
	"github.com/iov-one/bazaar/x/market"
	"github.com/iov-one/bazaar/x/utils"
)

// Chain returns the standard chain of decorators: logging, panic
// recovery, action tagging and the savepoints.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		utils.NewActionTagger(),
		// on DeliverTx, all writes of an operation commit or revert
		// together
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns the standard router, dispatching to all message
// handlers of the ledger.
func Router(auth x.Authenticator, control cash.Controller) *app.Router {
	r := app.NewRouter()
	cash.RegisterRoutes(r, auth, control)
	market.RegisterRoutes(r, auth, control)
	return r
}

// QueryRouter returns the standard query router, serving all buckets
// of the ledger.
func QueryRouter() bazaar.QueryRouter {
	qr := bazaar.NewQueryRouter()
	cash.RegisterQuery(qr)
	market.RegisterQuery(qr)
	return qr
}

// Stack wires up the standard router with the standard decorator
// chain. This can be passed into BaseApp.
func Stack(auth x.Authenticator) bazaar.Handler {
	control := cash.NewController(cash.NewBucket())
	return Chain().WithHandler(Router(auth, control))
}

// Initializers returns the standard genesis initializers.
func Initializers() bazaar.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		market.Initializer{},
	)
}

// Application constructs a basic ABCI application with the given
// arguments. If you are not sure what to use for the Handler, just
// use Stack().
func Application(name string, h bazaar.Handler, tx bazaar.TxDecoder, dbPath string, debug bool) (*app.BaseApp, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, err
	}
	b := app.NewBaseApp(name, kv, tx, h, QueryRouter(), Initializers(), nil, debug)
	return b, nil
}

// CommitKVStore returns an initialized KVStore that persists the data
// to the named path.
func CommitKVStore(dbPath string) (bazaar.CommitKVStore, error) {
	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into its components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}
