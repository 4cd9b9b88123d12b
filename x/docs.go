/*
Package x contains the extensions of the escrow application.

Extensions implement common functionality (Handler, Decorator,
Ticker, etc.) and are combined together to construct an application.
This package holds the authentication abstraction shared by all of them,
so that handlers depend on an Authenticator rather than on x/sigs or
x/remote directly.
*/
package x
