// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"

	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/core"
)

// ChunkRecordMUS serializes ChunkRecord in the MUS format.
var ChunkRecordMUS = chunkRecordMUS{}

var vectorMUS = ord.NewSliceSer[float32](varint.Float32)

type chunkRecordMUS struct{}

func (s chunkRecordMUS) Marshal(r ChunkRecord, bs []byte) (n int) {
	n = ord.String.Marshal(r.WellName, bs)
	n += varint.Uint64.Marshal(uint64(r.DocumentId), bs[n:])
	n += ord.String.Marshal(r.Filename, bs[n:])
	n += varint.Int.Marshal(int(r.Modality), bs[n:])
	n += ord.String.Marshal(r.Text, bs[n:])
	n += vectorMUS.Marshal(r.Vector, bs[n:])
	n += varint.Int.Marshal(r.Offsets.Start, bs[n:])
	n += varint.Int.Marshal(r.Offsets.End, bs[n:])
	return
}

func (s chunkRecordMUS) Unmarshal(bs []byte) (r ChunkRecord, n int, err error) {
	var n1 int
	r.WellName, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var docID uint64
	docID, n1, err = varint.Uint64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.DocumentId = core.ID(docID)
	r.Filename, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var modality int
	modality, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.Modality = core.Modality(modality)
	r.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.Vector, n1, err = vectorMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.Offsets.Start, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.Offsets.End, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	return
}

func (s chunkRecordMUS) Size(r ChunkRecord) (size int) {
	size = ord.String.Size(r.WellName)
	size += varint.Uint64.Size(uint64(r.DocumentId))
	size += ord.String.Size(r.Filename)
	size += varint.Int.Size(int(r.Modality))
	size += ord.String.Size(r.Text)
	size += vectorMUS.Size(r.Vector)
	size += varint.Int.Size(r.Offsets.Start)
	size += varint.Int.Size(r.Offsets.End)
	return
}

func (s chunkRecordMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	n1, err = varint.Uint64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = vectorMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	return
}

// MarshalChunkRecord serializes a ChunkRecord to bytes.
func MarshalChunkRecord(record *ChunkRecord) []byte {
	buf := make([]byte, ChunkRecordMUS.Size(*record))
	ChunkRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalChunkRecord deserializes a ChunkRecord from bytes.
func UnmarshalChunkRecord(data []byte) (*ChunkRecord, error) {
	record, _, err := ChunkRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &record, nil
}
