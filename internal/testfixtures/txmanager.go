package testfixtures

import "context"

// Snapshotter is an in-memory store that can be restored to an earlier state
type Snapshotter interface {
	Snapshot() (restore func())
}

// TxManager runs functions inline and counts calls per isolation level.
// Stores listed in Rollback are restored when fn fails, as a database would
// roll the transaction back. Attempts > 1 makes DoSerializable rerun fn, every
// attempt but the last being rolled back as if its commit hit a serialization
// failure.
type TxManager struct {
	Rollback []Snapshotter
	Attempts int

	Calls             int
	SerializableCalls int
	ReadOnlyCalls     int
}

// NewTxManager returns a manager that rolls back the store's bookings and consumers
func NewTxManager(store *Store) *TxManager {
	return &TxManager{Rollback: []Snapshotter{store.Bookings, store.Consumers}}
}

// Do runs fn with ctx
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return m.run(ctx, fn)
}

// DoSerializable runs fn with ctx, Attempts times at most
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.SerializableCalls++
	for attempt := 1; attempt < m.Attempts; attempt++ {
		restore := m.snapshot()
		_ = fn(ctx)
		restore()
	}
	return m.run(ctx, fn)
}

// DoReadOnly runs fn with ctx
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	m.ReadOnlyCalls++
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	restore := m.snapshot()
	if err := fn(ctx); err != nil {
		restore()
		return err
	}
	return nil
}

func (m *TxManager) snapshot() func() {
	restores := make([]func(), 0, len(m.Rollback))
	for _, s := range m.Rollback {
		restores = append(restores, s.Snapshot())
	}
	return func() {
		for _, restore := range restores {
			restore()
		}
	}
}
