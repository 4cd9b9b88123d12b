package orm

import (
	"fmt"
	"reflect"
	"regexp"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// ModelBucket is implemented by buckets that operates on Models rather than
// Objects.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrType
	// is returned.
	One(db weave.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key exists. It
	// returns ErrNotFound otherwise.
	Has(db weave.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database, replacing any previous value.
	Put(db weave.KVStore, key []byte, m Model) error

	// Insert saves given model in the database. It returns ErrDuplicate if
	// an entity with given key already exists.
	Insert(db weave.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db weave.KVStore, key []byte) error

	// IterAll returns an iterator over all entities stored in this
	// bucket, in ascending key order.
	IterAll(db weave.ReadOnlyKVStore) (*ModelIterator, error)

	// Register registers this bucket for queries under /<name>. When name
	// is empty the bucket name is used.
	Register(name string, r weave.QueryRouter)
}

// NewModelBucket returns a ModelBucket instance that stores entities of the
// same type as given model under the "<name>:" prefix.
func NewModelBucket(name string, m Model) ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	tp := reflect.TypeOf(m)
	if tp.Kind() != reflect.Ptr {
		panic(fmt.Sprintf("model must be a pointer, got %T", m))
	}
	return &modelBucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		model:  tp.Elem(),
	}
}

type modelBucket struct {
	name   string
	prefix []byte
	model  reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

// dbKey is the full key we store in the db, including prefix.
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (mb *modelBucket) dbKey(key []byte) []byte {
	l := len(mb.prefix)
	out := make([]byte, l+len(key))
	copy(out, mb.prefix)
	copy(out[l:], key)
	return out
}

func (mb *modelBucket) One(db weave.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != reflect.PtrTo(mb.model) {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %s", dest, mb.model)
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot read from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.model.Name())
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal %s: %s", mb.model.Name(), err)
	}
	return nil
}

func (mb *modelBucket) Has(db weave.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot read from the database")
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.model.Name())
	}
	return nil
}

func (mb *modelBucket) Put(db weave.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if reflect.TypeOf(m) != reflect.PtrTo(mb.model) {
		return errors.Wrapf(errors.ErrType, "cannot store %T in %s bucket", m, mb.name)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot marshal: %s", err)
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Insert(db weave.KVStore, key []byte, m Model) error {
	switch err := mb.Has(db, key); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "%s already exists", mb.model.Name())
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return mb.Put(db, key, m)
}

func (mb *modelBucket) Delete(db weave.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	if err := db.Delete(mb.dbKey(key)); err != nil {
		return errors.Wrap(err, "cannot delete from the database")
	}
	return nil
}

func (mb *modelBucket) IterAll(db weave.ReadOnlyKVStore) (*ModelIterator, error) {
	start, end := prefixRange(mb.prefix)
	it, err := db.Iterator(start, end)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create iterator")
	}
	return &ModelIterator{it: it, prefix: len(mb.prefix)}, nil
}

func (mb *modelBucket) Register(name string, r weave.QueryRouter) {
	if name == "" {
		name = mb.name
	}
	r.Register("/"+name, mb)
}

// Query handles queries from the QueryRouter. Key queries return a single
// entity or nothing, prefix queries all entities whose key starts with data.
func (mb *modelBucket) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	switch mod {
	case weave.KeyQueryMod:
		key := mb.dbKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		// return nothing on miss
		if value == nil {
			return nil, nil
		}
		return []weave.Model{{Key: key, Value: value}}, nil
	case weave.PrefixQueryMod:
		start, end := prefixRange(mb.dbKey(data))
		it, err := db.Iterator(start, end)
		if err != nil {
			return nil, err
		}
		return consumeIterator(it)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
}

// ModelIterator walks over entities of a single bucket. Always call Release
// once done.
type ModelIterator struct {
	it     weave.Iterator
	prefix int
}

// Next loads the next entity into dest and returns its primary key. It
// returns ErrIteratorDone when there are no more entities.
func (m *ModelIterator) Next(dest Model) ([]byte, error) {
	key, value, err := m.it.Next()
	if err != nil {
		return nil, err
	}
	if err := dest.Unmarshal(value); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "cannot unmarshal: %s", err)
	}
	return key[m.prefix:], nil
}

// Release releases the underlying store iterator.
func (m *ModelIterator) Release() {
	m.it.Release()
}
