// Package knowledge implements the depot knowledge base MCP (Model Context
// Protocol) server on top of PostgreSQL with the pgvector extension.  It
// keeps three kinds of data about sorting depots: the depot register
// (structured), load readings (time series) and free-form notes that are
// embedded into vectors for semantic search.
//
// Embeddings are produced by an embedding.Embedder; the vector similarity
// search itself runs inside the database using the pgvector cosine distance
// operator.
package knowledge
