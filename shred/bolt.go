// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package shred

import (
	"encoding/binary"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// batchSize is the number of values a BoltStore buffers before it writes
// them in a single transaction.
const batchSize = 4096

// A BoltStore is a Store that writes each column to a separate bucket of a
// bbolt database. Values are keyed by their sequence number within the
// bucket, as 8-byte big-endian integers, so that a cursor visits them in
// input order.
type BoltStore struct {
	db      *bolt.DB
	pending []entry
}

type entry struct {
	column string
	value  []byte
}

// OpenBolt opens (or creates) a bbolt database at the given path.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &BoltStore{db: db}, nil
}

// Put implements part of the Store interface. Values are buffered and
// written in batches.
func (b *BoltStore) Put(column string, value []byte) error {
	b.pending = append(b.pending, entry{
		column: column,
		value:  append([]byte(nil), value...),
	})
	if len(b.pending) >= batchSize {
		return b.Flush()
	}
	return nil
}

// Flush writes any buffered values to the database.
func (b *BoltStore) Flush() error {
	if len(b.pending) == 0 {
		return nil
	}
	err := b.db.Update(func(tx *bolt.Tx) error {
		for _, e := range b.pending {
			bkt, err := tx.CreateBucketIfNotExists([]byte(e.column))
			if err != nil {
				return fmt.Errorf("bucket %q: %w", e.column, err)
			}
			seq, err := bkt.NextSequence()
			if err != nil {
				return err
			}
			if err := bkt.Put(seqKey(seq), e.value); err != nil {
				return err
			}
		}
		return nil
	})
	b.pending = b.pending[:0]
	return err
}

// Close implements part of the Store interface. It flushes buffered values
// and closes the database.
func (b *BoltStore) Close() error {
	ferr := b.Flush()
	if err := b.db.Close(); err != nil {
		return err
	}
	return ferr
}

// Columns returns the names of the columns stored in the database, in
// lexicographic order.
func (b *BoltStore) Columns() ([]string, error) {
	if err := b.Flush(); err != nil {
		return nil, err
	}
	var out []string
	err := b.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			out = append(out, string(name))
			return nil
		})
	})
	return out, err
}

// Values returns the values of the named column in input order. It returns
// nil without error if the column does not exist.
func (b *BoltStore) Values(column string) ([][]byte, error) {
	if err := b.Flush(); err != nil {
		return nil, err
	}
	var out [][]byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(column))
		if bkt == nil {
			return nil
		}
		return bkt.ForEach(func(_, v []byte) error {
			// Copy out of the transaction; bbolt's memory is only valid inside it.
			out = append(out, append([]byte(nil), v...))
			return nil
		})
	})
	return out, err
}

func seqKey(seq uint64) []byte {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], seq)
	return key[:]
}
