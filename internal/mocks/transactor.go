package mocks

import (
	"context"

	"github.com/Msdoshack/2do/internal/store"
)

// FakeTransactor implements store.Transactor by running fn without a database.
// fn receives a nil *sql.Tx, so store mocks must tolerate WithTx(nil).
type FakeTransactor struct {
	// Err, when set, is returned without calling fn.
	Err error

	// Calls counts RunInTx invocations.
	Calls int
}

var _ store.Transactor = (*FakeTransactor)(nil)

// RunInTx implements store.Transactor
func (f *FakeTransactor) RunInTx(ctx context.Context, fn store.TxFn) error {
	f.Calls++
	if f.Err != nil {
		return f.Err
	}
	return fn(ctx, nil)
}
