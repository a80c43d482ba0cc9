package badger

import "encoding/binary"

// Key prefixes
const (
	chunkRecordPrefix = "chkrec"
	chunkRecordSeq    = "chkrecseq"
)

// makeChunkRecordKey generates the key for a chunk record at the given
// ordinal. Ordinals are written BigEndian so lexicographic iteration
// returns records in append order.
func makeChunkRecordKey(ordinal uint64) []byte {
	prefix := chunkRecordPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], ordinal)
	return buf
}
