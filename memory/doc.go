// Package memory holds the per-run step history and its optional JSON export.
//
// Persistence model:
//   - A History lives for one run and is only ever appended to.
//   - SaveHistory writes the final entries as indented JSON; LoadHistory reads
//     them back with tool results left as raw JSON.
package memory
