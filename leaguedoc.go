// Package leaguedoc ingests a sports league's website into a locally
// searchable knowledge base. It discovers pages from the site's sitemap,
// crawls and extracts their main content, splits the text into
// token-bounded chunks, embeds the chunks, and persists the vectors for
// nearest-neighbor retrieval. The search operation is also exposed as an
// MCP tool so an LLM client can use the indexed content as context.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., sqlite/,
// openai/, goquery/).
package leaguedoc
