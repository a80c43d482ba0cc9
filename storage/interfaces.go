package storage

import "context"

// SnapshotRepository persists the index as a flat, ordered record set.
// Implementations must be thread-safe and must preserve append order
// across restarts.
type SnapshotRepository interface {
	// AppendRecords appends records to the snapshot. Records become part
	// of the stored order in the order given.
	AppendRecords(ctx context.Context, records ...*ChunkRecord) error

	// AllRecords returns every stored record in append order.
	AllRecords(ctx context.Context) ([]*ChunkRecord, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Close releases resources held by the repository. The underlying
	// backend is closed separately by its owner.
	Close() error
}
