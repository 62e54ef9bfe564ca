/*
Package lockchain defines the interfaces shared by all packages of this
module: storage, messages, transactions, handlers and decorators. It also
contains helpers to work with addresses, conditions, time and the context.

State transitions are executed one after another. Each handler receives a
Context carrying the block time, height, chain ID and a logger, a KVStore
it may read and modify, and the transaction to process. Whatever a handler
writes becomes visible only if the whole transaction succeeds; see
x/utils.Savepoint.

There should exist two functions for every XYZ of type T that we want to
support in Context:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)
*/
package lockchain
