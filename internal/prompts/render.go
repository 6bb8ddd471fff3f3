package prompts

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nugget/promptgen/internal/requirements"
)

// Vars holds the values substituted into a stage template.
type Vars struct {
	ResourceName      string // ${ResourceName}: the name verbatim
	ResourceNameLower string // ${resourceNameLower}: the name lower-cased
}

// VarsFor derives the substitution values for a resource.
func VarsFor(rec requirements.Record) Vars {
	return Vars{
		ResourceName:      rec.Name,
		ResourceNameLower: rec.LowerName(),
	}
}

func (v Vars) lookup(name string) (string, bool) {
	switch name {
	case "ResourceName":
		return v.ResourceName, true
	case "resourceNameLower":
		return v.ResourceNameLower, true
	}
	return "", false
}

// PlaceholderError reports a template reference that cannot be
// substituted, either an unknown name or a malformed "$" sequence.
type PlaceholderError struct {
	Name   string // empty for a malformed sequence
	Offset int
}

// Error implements the error interface.
func (e *PlaceholderError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("invalid placeholder at offset %d", e.Offset)
	}
	return fmt.Sprintf("unknown placeholder %q at offset %d", e.Name, e.Offset)
}

// placeholder matches "$$", "$name", "${name}", or a bare "$" that is
// none of those (the empty final alternative).
var placeholder = regexp.MustCompile(`\$(?:(\$)|([_A-Za-z][_A-Za-z0-9]*)|\{([_A-Za-z][_A-Za-z0-9]*)\}|)`)

// Render substitutes v into tmpl. Substitution is literal: the values are
// inserted as-is and never re-scanned. "$$" renders a single "$". Any
// reference other than the two known placeholders is an error, so a typo
// in a template fails loudly instead of leaking into a prompt.
func Render(tmpl string, v Vars) (string, error) {
	var b strings.Builder
	b.Grow(len(tmpl))

	last := 0
	for _, m := range placeholder.FindAllStringSubmatchIndex(tmpl, -1) {
		b.WriteString(tmpl[last:m[0]])
		last = m[1]

		var name string
		switch {
		case m[2] >= 0:
			b.WriteByte('$')
			continue
		case m[4] >= 0:
			name = tmpl[m[4]:m[5]]
		case m[6] >= 0:
			name = tmpl[m[6]:m[7]]
		default:
			return "", &PlaceholderError{Offset: m[0]}
		}

		val, ok := v.lookup(name)
		if !ok {
			return "", &PlaceholderError{Name: name, Offset: m[0]}
		}
		b.WriteString(val)
	}
	b.WriteString(tmpl[last:])

	return b.String(), nil
}
