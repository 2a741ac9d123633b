package state

import (
	dbm "github.com/tendermint/tm-db"
)

// KVStore is the narrow persistence surface the typed accessors in this
// package work against. Both the raw database and an in-flight Tx
// satisfy it.
type KVStore interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
}

var (
	_ KVStore = (dbm.DB)(nil)
	_ KVStore = (*Tx)(nil)
)

// Tx is a write-buffered view over the database. Reads observe writes
// made earlier in the same Tx; nothing reaches the database until
// Commit. Dropping a Tx without committing discards every buffered
// write, which is what gives each gateway invocation its all-or-nothing
// semantics.
type Tx struct {
	db      dbm.DB
	writes  map[string][]byte
	deletes map[string]struct{}
}

func NewTx(db dbm.DB) *Tx {
	return &Tx{
		db:      db,
		writes:  make(map[string][]byte),
		deletes: make(map[string]struct{}),
	}
}

func (tx *Tx) Get(key []byte) ([]byte, error) {
	if _, ok := tx.deletes[string(key)]; ok {
		return nil, nil
	}
	if value, ok := tx.writes[string(key)]; ok {
		return value, nil
	}
	return tx.db.Get(key)
}

func (tx *Tx) Set(key, value []byte) error {
	delete(tx.deletes, string(key))
	buf := make([]byte, len(value))
	copy(buf, value)
	tx.writes[string(key)] = buf
	return nil
}

func (tx *Tx) Delete(key []byte) error {
	delete(tx.writes, string(key))
	tx.deletes[string(key)] = struct{}{}
	return nil
}

// Commit flushes the buffered writes to the database in a single
// synchronous batch.
func (tx *Tx) Commit() error {
	batch := tx.db.NewBatch()
	defer batch.Close()

	for key, value := range tx.writes {
		if err := batch.Set([]byte(key), value); err != nil {
			return err
		}
	}
	for key := range tx.deletes {
		if err := batch.Delete([]byte(key)); err != nil {
			return err
		}
	}
	return batch.WriteSync()
}
