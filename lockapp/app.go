/*
Package lockapp links together all the extensions to construct the lockup
application.
*/
package lockapp

import (
	"github.com/iov-one/lockchain"
	"github.com/iov-one/lockchain/app"
	"github.com/iov-one/lockchain/store/iavl"
	"github.com/iov-one/lockchain/x"
	"github.com/iov-one/lockchain/x/cash"
	"github.com/iov-one/lockchain/x/lockup"
	"github.com/iov-one/lockchain/x/utils"
)

// Name is used to label the application logs.
const Name = "lockchain"

// Chain returns a chain of decorators, to handle authentication, logging
// and recovery. The authentication decorator populates the context with
// the conditions the authenticator is using. It can be nil when the
// authenticator does not rely on the context.
func Chain(authDecorator lockchain.Decorator) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		authDecorator,
	)
}

// Router returns a router dispatching cash and lockup messages.
func Router(authFn x.Authenticator, ctrl *cash.BaseController, engine *lockup.Engine) *app.Router {
	r := app.NewRouter()
	cash.RegisterRoutes(r, authFn, ctrl)
	lockup.RegisterRoutes(r, authFn, engine)
	return r
}

// Stack wires up the router with the decorator chain. The lockup engine is
// moving coins using the cash controller and is registered as the receiver
// of the custody address, so that an empty transfer to the custody
// address results in a deposit.
func Stack(authFn x.Authenticator, authDecorator lockchain.Decorator) lockchain.Handler {
	ctrl := cash.NewController()
	engine := lockup.NewEngine(ctrl)
	ctrl.RegisterReceiver(lockup.CustodyAddress(), engine)
	return Chain(authDecorator).WithHandler(Router(authFn, ctrl, engine))
}

// Initializers returns all extension initializers, in the order they must
// be run.
func Initializers() lockchain.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		lockup.Initializer{},
	)
}

// NewApplication constructs the lockup application using given store.
func NewApplication(db lockchain.CacheableKVStore, authFn x.Authenticator, authDecorator lockchain.Decorator) (*app.Application, error) {
	return app.NewApplication(Name, db, Stack(authFn, authDecorator), Initializers())
}

// OpenStore opens the persistent application state kept in given directory.
func OpenStore(dir string) (*iavl.CommitStore, error) {
	return iavl.NewCommitStore(dir, "lockchain")
}
