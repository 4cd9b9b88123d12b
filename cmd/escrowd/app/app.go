/*
Package app links together all the various components
to construct the escrowd app.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/app"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/store/iavl"
	"github.com/iov-one/weave-escrow/x"
	"github.com/iov-one/weave-escrow/x/asset"
	"github.com/iov-one/weave-escrow/x/cash"
	"github.com/iov-one/weave-escrow/x/escrow"
	"github.com/iov-one/weave-escrow/x/remote"
	"github.com/iov-one/weave-escrow/x/sigs"
)

// Authenticator returns the authentication used by all handlers. Signers
// of a transaction are recognized as well as the caller of a remote call.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{}, remote.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		app.NewLogging(),
		app.NewRecovery(),
		sigs.NewDecorator(),
	)
}

// Router returns the router of all messages. The same router serves
// transactions and remote calls.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	payments := cash.NewController()
	cash.RegisterRoutes(r, authFn, payments)
	// Asset services only accept calls made by their escrow contract.
	asset.RegisterRoutes(r, remote.Authenticate{})
	escrow.RegisterRoutes(r, authFn, payments, remote.NewCaller(payments))
	return r
}

// QueryRouter returns a default query router, allowing access to
// "/wallets", "/auth", "/assets", "/escrows" and "/remote" paths.
func QueryRouter() weave.QueryRouter {
	r := weave.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		sigs.RegisterQuery,
		asset.RegisterQuery,
		escrow.RegisterQuery,
		remote.RegisterQuery,
	)
	return r
}

// Initializers returns the genesis initializers of all extensions.
func Initializers() weave.Initializer {
	return weave.ChainInitializers(
		cash.Initializer{},
		asset.Initializer{},
		escrow.Initializer{},
		remote.Initializer{},
	)
}

// Stack wires up the router with the decorator chain. The returned ticker
// processes the remote calls scheduled by delivered messages.
func Stack() (weave.Handler, weave.Ticker) {
	router := Router(Authenticator())
	return Chain().WithHandler(router), remote.NewDispatcher(router)
}

// Application constructs a basic ABCI application with
// the given arguments.
func Application(name string, dbPath string, debug bool) (app.BaseApp, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	handler, ticker := Stack()
	store := app.NewStoreApp(name, kv, QueryRouter(), context.Background())
	store = store.WithInit(Initializers())
	return app.NewBaseApp(store, app.DecodeTx, handler, ticker, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (weave.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name, iavl.DefaultCacheSize), nil
}
