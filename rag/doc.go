// Package rag provides RAG (Retrieval-Augmented Generation) chunking and export
// functionality for LLM integration.
//
// This package prepares extracted document content for use with large language
// models by providing semantic chunking and various export formats.
//
// # Chunking
//
// The [Chunker] splits documents into semantically meaningful chunks:
//
//	chunker := rag.NewChunkerWithConfig(config)
//	result, err := chunker.Chunk(document)
//
// Chunking respects document structure, avoiding splits in the middle of:
//   - Tables
//   - Lists
//   - Paragraphs
//   - Headings with their following content
//
// # Chunk Configuration
//
// Use [ChunkerConfig] to control chunking behavior:
//
//   - MaxChunkSize - maximum characters per chunk
//   - MinHeadingLevel - deepest heading level that starts a new section
//   - IDPrefix - prefix for generated chunk IDs
//
// Chunk reads only these three fields; the other ChunkerConfig fields
// (sizes, overlap, coherence and context switches) do not change its output.
//
// # Chunk Metadata
//
// Each [Chunk] includes metadata for retrieval:
//
//   - Page numbers and positions
//   - Section headings
//   - Content type (paragraph, table, list, etc.)
//   - Relationships to other chunks
//
// # Export Formats
//
// Export a [ChunkCollection] in various formats:
//
//   - ToJSON() - Structured JSON output
//   - ToJSONL() - One JSON object per line
//   - ToCSV(), ToTSV() - Delimited rows
//
// # Markdown Export
//
// The [MarkdownOptions] control markdown generation:
//
//   - IncludeMetadata - add front matter
//   - PreserveTables - use markdown table syntax
//   - HeadingStyle - ATX (#) or Setext (===) headings
package rag
