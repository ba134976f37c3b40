package repositories

import (
	"context"
	"sync"
)

// MemoryStore owns the in-memory repositories and runs transactions over them.
// Transactions are serialized; a failed one is undone step by step.
type MemoryStore struct {
	Products *MemoryProductRepository
	Entries  *MemoryStockEntryRepository
	Exits    *MemoryStockExitRepository

	txMu sync.Mutex
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		Products: NewMemoryProductRepository(),
		Entries:  NewMemoryStockEntryRepository(),
		Exits:    NewMemoryStockExitRepository(),
	}
}

// Repositories returns the non-transactional view of the store.
func (s *MemoryStore) Repositories() Repositories {
	return Repositories{Products: s.Products, Entries: s.Entries, Exits: s.Exits}
}

// Run implements TxRunner.
func (s *MemoryStore) Run(ctx context.Context, fn func(repos Repositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	j := &journal{}
	err := fn(Repositories{
		Products: s.Products.withJournal(j),
		Entries:  s.Entries.withJournal(j),
		Exits:    s.Exits.withJournal(j),
	})
	if err != nil {
		j.rollback()
		return err
	}
	return nil
}
