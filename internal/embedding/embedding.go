// Package embedding provides text embedding for the knowledge base: the
// Embedder interface and an HTTP client for OpenAI-compatible embedding
// endpoints.
package embedding

import "context"

// DefaultDimensions is the vector size of the default embedding model.
const DefaultDimensions = 384

//go:generate mockgen -destination=mock_embedding/mock_embedding.go . Embedder

// Embedder produces vector embeddings for texts.
type Embedder interface {
	// Embed returns the embedding vector for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)
	// Dimensions returns the size of the vectors produced by Embed.
	Dimensions() int
}
