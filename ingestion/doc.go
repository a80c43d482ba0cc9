// Package ingestion turns extracted document text into indexed chunks.
//
// The Pipeline manages the ingestion workflow for one source document:
//   - splitting extracted text into fixed-length overlapping windows
//   - generating embeddings for the windows in one batch
//   - registering the document and its chunks in the hierarchy index
//   - optionally appending the chunks to a persistent snapshot
//
// Ingestion runs sequentially; raw text extraction and OCR happen
// upstream, and the index serializes insertion itself.
package ingestion
