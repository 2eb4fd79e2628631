// Package query implements the text model behind the advq search input: a single
// line of free text interleaved with key:value filter tokens.
//
// The package is made of pure functions over a query string and a caret offset:
//
//   - Parse splits a query into NormalizedFilters and the remaining free text.
//   - WordAt locates the space-delimited word under the caret.
//   - Classify decides whether the caret is waiting for a filter key or for the
//     value of a specific key.
//   - InsertFilterKey and InsertFilterValue rewrite the word under the caret when a
//     suggestion is picked, leaving every other token untouched.
//
// Session bundles a query and its caret for callers that own an input surface.
// Offsets are rune offsets, the unit reported by terminal text inputs.
package query
