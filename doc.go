/*
Package weave defines the interfaces used throughout the escrow application,
such as storage, transactions, handlers and authentication conditions.

Extensions live under x/. Each of them declares its messages, registers the
handlers that process them and keeps its state in the KVStore that the
application passes in. Handlers never share in-memory state: everything an
extension knows about the world is read from the store on every call.

We pass context through context.Context between app, middleware, and
handlers. To do so, weave defines some common keys to store info, such as
block height, block time and chain id. Each extension, such as x/remote, may
add its own keys to enrich the context with specific data.

There should exist two functions for every XYZ of type T that we want to
support in Context:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level
modules overwriting the value (eg. height, block time).
*/
package weave
