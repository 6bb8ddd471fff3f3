// Package prompts contains the stage prompt templates and the fixed rule
// table that decides which of them a resource receives.
//
// Template text lives in templates/*.tmpl and is embedded at compile time.
// The text is full of Markdown backticks, which a Go raw string cannot
// hold, and it must reach the output byte-for-byte.
//
// Convention: each stage gets its own template file named after its output
// tag (01-contracts.tmpl, 05-controller.tmpl, ...). Templates reference
// the resource through two placeholders, ${ResourceName} and
// ${resourceNameLower}; see [Render].
package prompts
