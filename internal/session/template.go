// Package session implements the editorlink session core: bootstrap script
// rendering, the ssh transport, and the watch loop that turns streamed
// protocol records into local editor invocations.
package session

import (
	"regexp"
	"strings"
)

// placeholderPattern matches any {{NAME}} token remaining after the bound
// placeholders have been substituted.
var placeholderPattern = regexp.MustCompile(`\{\{[A-Z_]+\}\}`)

// Render substitutes {{NAME}} placeholders in a script template. Every
// occurrence of each bound name is replaced with its value; placeholder
// tokens that are not bound are removed (empty substitution). Render is a
// pure transform; a malformed template is a caller bug, not an error.
func Render(template string, bindings map[string]string) string {
	out := template
	for name, value := range bindings {
		out = strings.ReplaceAll(out, "{{"+name+"}}", value)
	}
	return placeholderPattern.ReplaceAllString(out, "")
}

// QuoteLiteral escapes s as a POSIX shell single-quoted string literal, so
// arbitrary text (such as the helper script body) can be embedded in a
// rendered script.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
