package generate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"
)

// Encode serializes records as a JSON array indented by two spaces, with
// no trailing newline and no HTML escaping. When ascii is set, every
// non-ASCII character is written as a lowercase \uXXXX escape (a surrogate
// pair above U+FFFF). With ascii set the output is byte-identical to the
// prompts files produced by earlier tooling.
func Encode(records []PromptRecord, ascii bool) ([]byte, error) {
	if records == nil {
		records = []PromptRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("encode prompts: %w", err)
	}
	out := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))

	if ascii {
		out = escapeNonASCII(out)
	}
	return out, nil
}

// escapeNonASCII rewrites DEL and every multi-byte UTF-8 sequence in data
// as JSON \u escapes. Such bytes only occur inside JSON strings, so the
// rewrite never touches structure.
func escapeNonASCII(data []byte) []byte {
	const hex = "0123456789abcdef"

	out := make([]byte, 0, len(data))
	for len(data) > 0 {
		if data[0] < utf8.RuneSelf && data[0] != 0x7f {
			out = append(out, data[0])
			data = data[1:]
			continue
		}

		r, size := utf8.DecodeRune(data)
		data = data[size:]

		units := []rune{r}
		if r > 0xFFFF {
			r1, r2 := utf16.EncodeRune(r)
			units = []rune{r1, r2}
		}
		for _, u := range units {
			out = append(out, '\\', 'u',
				hex[u>>12&0xF], hex[u>>8&0xF], hex[u>>4&0xF], hex[u&0xF])
		}
	}
	return out
}
