// Package tools holds the step loop's tool stubs and their typed results.
//
// Includes:
//   - Result: sealed sum type over code, browse, search, file, fallback and failed outcomes.
//   - RunCode, Browser, Searcher, FileReader: the stubs. None executes code, drives a
//     browser, queries a search engine or parses PDFs.
//   - ToolDefinition and GenerateSchema[T](): name, description, JSON input schema and
//     handler for each stub, used by the CLI to list and invoke them directly.
//   - Invariant: stubs never return Go errors for runtime failures; they return a
//     FailedResult carrying an outcome.Text.
package tools
