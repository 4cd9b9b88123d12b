package orm

import (
	weave "github.com/iov-one/weave-escrow"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	weave.Persistent
	Validate() error
}
