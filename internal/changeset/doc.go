// Package changeset implements the changeset artifact: a human summary plus
// the per-package bump intents it records, and the Markdown-with-frontmatter
// text format used to persist it.
//
// A persisted changeset looks like:
//
//	---
//	"cool-package": minor
//	"other-package": patch
//	---
//
//	Nice simple summary
//
// Decode accepts single-quoted, double-quoted or plain package keys in the
// frontmatter. Encode always writes double-quoted keys, so the canonical form
// of any decoded changeset is obtained with Encode(Decode(text)).
package changeset
