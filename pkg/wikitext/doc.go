// Package wikitext parses wiki template markup: free text interleaved with
// nested {{name|positional|key=value}} invocations.
//
// Parsing is total. Markup that does not fit the grammar degrades to
// NodeError nodes, templates truncated at end of input, or dropped tokens;
// ParseWithDiagnostics reports how often each happened.
//
// Trees returned by Parse share memory with the input string. Normalize
// copies a tree so it can be retained independently of the input.
package wikitext
