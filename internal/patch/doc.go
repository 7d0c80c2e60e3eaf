// Package patch applies the structured configuration edits performed during
// setup: key insertion/replacement on JSON-with-comments compiler
// configuration documents (comments and formatting preserved), schema
// validation of the result, and the single textual substitution that
// activates the import-boundary lint rule.
package patch
