package badger

import (
	"bytes"
	"context"

	"github.com/dgraph-io/badger/v4"

	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/storage"
)

// SnapshotRepository implements storage.SnapshotRepository on BadgerDB.
// Records are keyed by a monotonic ordinal so iteration returns them in
// append order, which is what index restoration relies on.
type SnapshotRepository struct {
	backend *Backend
	ordSeq  *badger.Sequence
}

var _ storage.SnapshotRepository = (*SnapshotRepository)(nil)

// NewSnapshotRepository creates a snapshot repository over an open backend.
func NewSnapshotRepository(backend *Backend) (*SnapshotRepository, error) {
	ordSeq, err := backend.GetSequence(chunkRecordSeq)
	if err != nil {
		return nil, err
	}

	return &SnapshotRepository{
		backend: backend,
		ordSeq:  ordSeq,
	}, nil
}

// Close releases the ordinal sequence.
func (r *SnapshotRepository) Close() error {
	return r.ordSeq.Release()
}

// AppendRecords appends records to the snapshot in the order given.
func (r *SnapshotRepository) AppendRecords(ctx context.Context, records ...*storage.ChunkRecord) error {
	if len(records) == 0 {
		return nil
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			ordinal, err := r.ordSeq.Next()
			if err != nil {
				return err
			}

			key := makeChunkRecordKey(ordinal)
			if err := tx.Set(key, storage.MarshalChunkRecord(record)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// AllRecords returns every stored record in append order.
func (r *SnapshotRepository) AllRecords(ctx context.Context) ([]*storage.ChunkRecord, error) {
	var records []*storage.ChunkRecord

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chunkRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()

			// The sequence key shares the record prefix.
			if bytes.Equal(item.Key(), []byte(chunkRecordSeq)) {
				continue
			}

			err := item.Value(func(val []byte) error {
				record, err := storage.UnmarshalChunkRecord(val)
				if err != nil {
					return err
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return records, nil
}

// Count returns the number of stored records.
func (r *SnapshotRepository) Count(ctx context.Context) (int, error) {
	count := 0

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chunkRecordPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if bytes.Equal(iter.Item().Key(), []byte(chunkRecordSeq)) {
				continue
			}
			count++
		}
		return nil
	}, false)

	if err != nil {
		return 0, err
	}
	return count, nil
}
