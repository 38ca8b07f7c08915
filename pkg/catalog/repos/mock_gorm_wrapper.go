package repos

import (
	"errors"
	"reflect"
)

// MockGormWrapper records calls made against it instead of touching a
// database. Query results are whatever was last passed to SetResult.
type MockGormWrapper interface {
	GormWrapper
	Created() []interface{}
	Migrated() []interface{}
	Chain() *QueryChain
	Closed() bool
	SetError(error) MockGormWrapper
	SetResult(interface{}) MockGormWrapper
}

type QueryChain struct {
	Where WhereQuery
	Order interface{}
	Limit int
	Conds []interface{}
}

type WhereQuery struct {
	Query interface{}
	Args  []interface{}
}

type mockGormWrapper struct {
	error    error
	created  []interface{}
	migrated []interface{}
	chain    *QueryChain
	result   interface{}
	closed   bool
}

func Mock() MockGormWrapper {
	return &mockGormWrapper{}
}

func (w *mockGormWrapper) Created() []interface{} {
	return w.created
}

func (w *mockGormWrapper) Migrated() []interface{} {
	return w.migrated
}

func (w *mockGormWrapper) Chain() *QueryChain {
	return w.chain
}

func (w *mockGormWrapper) Closed() bool {
	return w.closed
}

func (w *mockGormWrapper) SetError(e error) MockGormWrapper {
	w.error = e
	return w
}

func (w *mockGormWrapper) SetResult(r interface{}) MockGormWrapper {
	w.result = r
	return w
}

func (w *mockGormWrapper) Error() error {
	return w.error
}

func (w *mockGormWrapper) AutoMigrate(dst ...interface{}) error {
	if w.error != nil {
		return w.error
	}
	w.migrated = append(w.migrated, dst...)
	return nil
}

func (w *mockGormWrapper) Create(value interface{}) GormWrapper {
	if w.error == nil {
		w.created = append(w.created, value)
	}
	return w
}

func (w *mockGormWrapper) query() *QueryChain {
	if w.chain == nil {
		w.chain = &QueryChain{}
	}
	return w.chain
}

func (w *mockGormWrapper) Where(query interface{}, args ...interface{}) GormWrapper {
	w.query().Where = WhereQuery{Query: query, Args: args}
	return w
}

func (w *mockGormWrapper) Order(value interface{}) GormWrapper {
	w.query().Order = value
	return w
}

func (w *mockGormWrapper) Limit(limit int) GormWrapper {
	w.query().Limit = limit
	return w
}

func (w *mockGormWrapper) First(dest interface{}, conds ...interface{}) GormWrapper {
	return w.fill(dest, conds)
}

func (w *mockGormWrapper) Find(dest interface{}, conds ...interface{}) GormWrapper {
	return w.fill(dest, conds)
}

func (w *mockGormWrapper) fill(dest interface{}, conds []interface{}) GormWrapper {
	w.query().Conds = conds
	if w.error != nil || w.result == nil {
		return w
	}
	w.error = Replace(dest, w.result)
	return w
}

func (w *mockGormWrapper) Close() error {
	w.closed = true
	return nil
}

// Replace sets the value pointed to by i to v.
func Replace(i, v interface{}) error {
	val := reflect.ValueOf(i)
	if val.Kind() != reflect.Ptr {
		return errors.New("not a pointer")
	}

	val = val.Elem()

	newVal := reflect.Indirect(reflect.ValueOf(v))

	if !newVal.Type().AssignableTo(val.Type()) {
		return errors.New("mismatched types")
	}

	val.Set(newVal)
	return nil
}
