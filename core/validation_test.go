package core

import (
	"errors"
	"testing"
)

func TestValidateWellName(t *testing.T) {
	tests := []struct {
		name     string
		wellName string
		wantErr  error
	}{
		{name: "valid name", wellName: "NSKT-01", wantErr: nil},
		{name: "empty name", wellName: "", wantErr: ErrEmptyWellName},
		{name: "whitespace only", wellName: "   ", wantErr: ErrEmptyWellName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWellName(tt.wellName)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateWellName(%q) = %v, want %v", tt.wellName, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDocumentInput(t *testing.T) {
	if err := ValidateDocumentInput("report.pdf", ModalityText); err != nil {
		t.Errorf("valid document input rejected: %v", err)
	}
	if err := ValidateDocumentInput("", ModalityText); !errors.Is(err, ErrEmptyFilename) {
		t.Errorf("empty filename: got %v, want ErrEmptyFilename", err)
	}
	if err := ValidateDocumentInput("report.pdf", Modality(99)); !errors.Is(err, ErrInvalidModality) {
		t.Errorf("bad modality: got %v, want ErrInvalidModality", err)
	}
}

func TestValidateChunk(t *testing.T) {
	valid := &Chunk{
		Text:     "TVD 2306m recorded at section A",
		Vector:   []float32{0.1, 0.2, 0.3},
		Offsets:  OffsetRange{Start: 0, End: 31},
		Modality: ModalityText,
	}

	tests := []struct {
		name    string
		mutate  func(c *Chunk)
		wantErr error
	}{
		{name: "valid chunk", mutate: func(c *Chunk) {}, wantErr: nil},
		{name: "empty text", mutate: func(c *Chunk) { c.Text = "" }, wantErr: ErrEmptyText},
		{name: "empty vector", mutate: func(c *Chunk) { c.Vector = nil }, wantErr: ErrEmptyVector},
		{name: "negative start", mutate: func(c *Chunk) { c.Offsets.Start = -1 }, wantErr: ErrInvalidOffsets},
		{name: "end before start", mutate: func(c *Chunk) { c.Offsets = OffsetRange{Start: 10, End: 4} }, wantErr: ErrInvalidOffsets},
		{name: "bad modality", mutate: func(c *Chunk) { c.Modality = 0 }, wantErr: ErrInvalidModality},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunk := *valid
			chunk.Vector = append([]float32(nil), valid.Vector...)
			tt.mutate(&chunk)

			err := ValidateChunk(&chunk)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateChunk() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateChunk() = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidChunk) {
				t.Errorf("ValidateChunk() error should wrap ErrInvalidChunk, got %v", err)
			}
		})
	}

	t.Run("nil chunk", func(t *testing.T) {
		if err := ValidateChunk(nil); !errors.Is(err, ErrInvalidChunk) {
			t.Errorf("ValidateChunk(nil) = %v, want ErrInvalidChunk", err)
		}
	})
}

func TestParseModality(t *testing.T) {
	for _, s := range []string{"text", "Table", " IMAGE "} {
		if _, err := ParseModality(s); err != nil {
			t.Errorf("ParseModality(%q) unexpected error: %v", s, err)
		}
	}
	if _, err := ParseModality("schematic"); !errors.Is(err, ErrInvalidModality) {
		t.Errorf("ParseModality(schematic) = %v, want ErrInvalidModality", err)
	}
}
