/*
Package remote implements asynchronous calls between services of the
application.

A call is a message addressed to another service (the target) on behalf
of a caller. Scheduling a call only stores it in a queue, it is never
executed by the transaction that scheduled it. The Dispatcher is run at
the end of every block and executes all queued calls in order, each
within its own cache so that a failing call does not leave any state
change behind.

A call can be chained with a continuation. Once the call is executed,
whatever its outcome, the continuation message is queued for the caller
itself. The continuation can read the outcome of the call it follows
using UpstreamResult, which allows implementing two step sagas: issue a
call, then confirm or compensate depending on its result.

Handlers executed by the dispatcher are authenticated as the caller, use
Authenticate together with other authenticators to recognize them.
Returning Abort from a handler fails the call but keeps the changes done
by that handler, which is the way to persist a compensation.

Every scheduled call, including its continuation, costs a fee in native
currency paid by the caller when the call is scheduled.
*/
package remote
