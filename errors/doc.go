/*
Package errors implements custom error interfaces for the escrow application.

Every error returned to a client should wrap one of the root errors declared
in this package or registered by an extension with Register. A root error
carries an ABCI code so that clients can distinguish failure kinds and act on
them, while the wrapping layers add a human readable description.

	ErrNotFound.New("no escrow")
	errors.Wrap(err, "cannot load escrow")
	errors.Wrapf(errors.ErrAmount, "%d is not positive", amount)

Use Is to test the kind of an error regardless of how many times it was
wrapped:

	if errors.ErrNotFound.Is(err) { ... }

The first Wrap call attaches a stack trace. Format with %+v to print it.
*/
package errors
