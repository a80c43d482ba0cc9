// Package mock provides a test double implementation of ai.Embedder.
//
// The mock generates deterministic vectors from a text hash, so tests
// get stable, repeatable similarity rankings without an external
// embedding service. Custom behavior can be injected via the function
// field.
//
//	mockEmbedder := mock.NewMockEmbedder()
//	mockEmbedder.Dimension = 3
//	mockEmbedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return []float32{1, 0, 0}, nil
//	}
package mock
