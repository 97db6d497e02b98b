package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// BaseApp is an ABCI application that combines a commit store, a tx
// decoder and a handler stack. It keeps separate caches for CheckTx and
// DeliverTx and commits the deliver cache on every Commit call.
//
// Errors on ABCI steps that take no user input (InitChain, Commit, ...)
// are handled as panics, as there is no way to report them gracefully.
type BaseApp struct {
	logger log.Logger

	// name is what is returned from abci.Info
	name string

	store *CommitStore

	decoder bazaar.TxDecoder
	handler bazaar.Handler

	// initializer is used to initialize state from the genesis
	initializer bazaar.Initializer

	queryRouter bazaar.QueryRouter

	// chainID is loaded from the db in initialization
	chainID string

	// baseContext contains context info that is valid for the lifetime
	// of this app (eg. chainID)
	baseContext bazaar.Context

	// blockContext contains context info that is valid for the current
	// block (eg. height), reset on BeginBlock
	blockContext bazaar.Context

	debug bool
}

var _ abci.Application = (*BaseApp)(nil)

// NewBaseApp constructs a basic abci application.
// Panics if unable to properly load the state from the given store.
func NewBaseApp(
	name string,
	store bazaar.CommitKVStore,
	decoder bazaar.TxDecoder,
	handler bazaar.Handler,
	queryRouter bazaar.QueryRouter,
	initializer bazaar.Initializer,
	baseContext bazaar.Context,
	debug bool,
) *BaseApp {
	if baseContext == nil {
		baseContext = context.Background()
	}
	b := &BaseApp{
		name:        name,
		store:       NewCommitStore(store),
		decoder:     decoder,
		handler:     handler,
		queryRouter: queryRouter,
		initializer: initializer,
		baseContext: baseContext,
		debug:       debug,
	}
	b = b.WithLogger(log.NewNopLogger())

	// load the chainID from the db
	b.chainID = mustLoadChainID(b.DeliverStore())
	if b.chainID != "" {
		b.baseContext = bazaar.WithChainID(b.baseContext, b.chainID)
	}

	// get the most recent height
	info, err := b.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	b.blockContext = bazaar.WithHeight(b.baseContext, info.Version)
	return b
}

// WithLogger sets the logger on the app and returns it,
// to make it easy to chain in initialization.
// Also sets the baseContext logger.
func (b *BaseApp) WithLogger(logger log.Logger) *BaseApp {
	b.baseContext = bazaar.WithLogger(b.baseContext, logger)
	b.logger = logger
	return b
}

// GetChainID returns the current chainID.
func (b *BaseApp) GetChainID() string {
	return b.chainID
}

// BlockContext returns the block context for public use.
func (b *BaseApp) BlockContext() bazaar.Context {
	return b.blockContext
}

// DeliverStore returns the current DeliverTx cache.
func (b *BaseApp) DeliverStore() bazaar.CacheableKVStore {
	return b.store.DeliverStore()
}

// CheckStore returns the current CheckTx cache.
func (b *BaseApp) CheckStore() bazaar.CacheableKVStore {
	return b.store.CheckStore()
}

//----------------------- ABCI ---------------------

// Info implements abci.Application. It returns the height and hash.
func (b *BaseApp) Info(req abci.RequestInfo) abci.ResponseInfo {
	info, err := b.store.CommitInfo()
	if err != nil {
		panic(err)
	}

	b.logger.Info("Info synced",
		"height", info.Version,
		"hash", fmt.Sprintf("%X", info.Hash))

	return abci.ResponseInfo{
		Data:             b.name,
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

// SetOption - ABCI
func (b *BaseApp) SetOption(res abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

// Query gets data from the app store. Path may be "/<bucket>", followed
// by "?prefix" to make a prefix query. Key and Value in the result are
// always serialized ResultSet objects, so a query can return 0 to N
// entries.
func (b *BaseApp) Query(reqQuery abci.RequestQuery) (resQuery abci.ResponseQuery) {
	path, mod := splitPath(reqQuery.Path)
	qh := b.queryRouter.Handler(path)
	if qh == nil {
		resQuery.Code = 1
		resQuery.Log = fmt.Sprintf("unexpected query path: %v", reqQuery.Path)
		return
	}

	info, err := b.store.CommitInfo()
	if err != nil {
		return queryError(err)
	}
	resQuery.Height = info.Version

	db := b.store.committed.CacheWrap()
	models, err := qh.Query(db, mod, reqQuery.Data)
	if err != nil {
		return queryError(err)
	}

	resQuery.Key, err = ResultsFromKeys(models).Marshal()
	if err != nil {
		return queryError(err)
	}
	resQuery.Value, err = ResultsFromValues(models).Marshal()
	if err != nil {
		return queryError(err)
	}

	return resQuery
}

// CheckTx - ABCI - dispatches to the handler.
func (b *BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return bazaar.CheckTxError(err, b.debug)
	}

	ctx := bazaar.WithLogInfo(b.blockContext,
		"call", "check_tx",
		"path", bazaar.GetPath(tx))

	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return bazaar.CheckOrError(res, err, b.debug)
}

// DeliverTx - ABCI - dispatches to the handler.
func (b *BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return bazaar.DeliverTxError(err, b.debug)
	}

	ctx := bazaar.WithLogInfo(b.blockContext,
		"call", "deliver_tx",
		"path", bazaar.GetPath(tx))

	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return bazaar.DeliverOrError(res, err, b.debug)
}

// InitChain implements ABCI. It parses the app state from the genesis
// and runs the initializers. Errors here make no sense to report
// gracefully, so they panic.
func (b *BaseApp) InitChain(req abci.RequestInitChain) (res abci.ResponseInitChain) {
	if err := b.parseAppState(req.AppStateBytes, req.ChainId); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

// BeginBlock implements ABCI. It sets up the block context.
func (b *BaseApp) BeginBlock(req abci.RequestBeginBlock) (res abci.ResponseBeginBlock) {
	ctx := bazaar.WithHeight(b.baseContext, req.Header.GetHeight())
	ctx = bazaar.WithBlockTime(ctx, req.Header.Time)
	b.blockContext = ctx
	return
}

// EndBlock - ABCI
func (b *BaseApp) EndBlock(_ abci.RequestEndBlock) (res abci.ResponseEndBlock) {
	return
}

// Commit implements abci.Application.
func (b *BaseApp) Commit() (res abci.ResponseCommit) {
	commitID, err := b.store.Commit()
	if err != nil {
		panic(err)
	}

	b.logger.Debug("Commit synced",
		"height", commitID.Version,
		"hash", fmt.Sprintf("%X", commitID.Hash),
	)

	return abci.ResponseCommit{Data: commitID.Hash}
}

// parseAppState is called from InitChain, the first time the chain
// starts, and not on restarts.
func (b *BaseApp) parseAppState(data []byte, chainID string) error {
	if b.chainID != "" {
		return errors.Wrapf(errors.ErrImmutable, "app state previously loaded for chain: %s", b.chainID)
	}
	if len(data) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state not set in genesis.json")
	}

	var appState bazaar.Options
	if err := json.Unmarshal(data, &appState); err != nil {
		return errors.Wrap(err, "cannot parse app_state")
	}

	if err := saveChainID(b.DeliverStore(), chainID); err != nil {
		return err
	}
	b.chainID = chainID
	b.baseContext = bazaar.WithChainID(b.baseContext, chainID)

	if b.initializer == nil {
		return nil
	}
	return b.initializer.FromGenesis(appState, b.DeliverStore())
}

// loadTx calls the decoder, and captures any panics.
func (b *BaseApp) loadTx(txBytes []byte) (tx bazaar.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	return
}

// splitPath splits out the real path along with the query
// modifier (everything after the ?).
func splitPath(path string) (string, string) {
	var mod string
	chunks := strings.SplitN(path, "?", 2)
	if len(chunks) == 2 {
		path = chunks[0]
		mod = chunks[1]
	}
	return path, mod
}

func queryError(err error) abci.ResponseQuery {
	return abci.ResponseQuery{
		Log:  err.Error(),
		Code: 1,
	}
}

// ChainInitializers lets you initialize many extensions with one function.
func ChainInitializers(inits ...bazaar.Initializer) bazaar.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []bazaar.Initializer
}

// FromGenesis will pass opts to all initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts bazaar.Options, kv bazaar.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
