package frontmatter

import (
	"regexp"
	"strconv"
	"strings"
)

// Delimiter bounds the header block on both sides.
const Delimiter = "---"

// reservedScalars are words that would be read back as a non-string scalar
// if emitted bare, so string values colliding with them must be quoted.
var reservedScalars = map[string]bool{
	"true": true, "false": true,
	"yes": true, "no": true,
	"on": true, "off": true,
	"null": true, "~": true,
}

// unsafeScalar matches strings that need quoting: structural characters,
// comment markers, or leading/trailing whitespace.
var unsafeScalar = regexp.MustCompile("[:#\\[\\]{}|>&*!'\"%@`,\\n]|^\\s|\\s$|^-\\s|^$")

// numberLike matches strings that would be read back as numbers.
var numberLike = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// Serialize renders the document in canonical form: delimiter line, fields
// in order, delimiter line, then the body separated by a blank line when
// present.
func Serialize(doc *Doc) string {
	var b strings.Builder
	b.WriteString(Delimiter)
	b.WriteByte('\n')
	for _, f := range doc.Fields {
		writeField(&b, f, 0)
	}
	b.WriteString(Delimiter)
	b.WriteByte('\n')
	if doc.Body != "" {
		b.WriteByte('\n')
		b.WriteString(doc.Body)
		if !strings.HasSuffix(doc.Body, "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func writeField(b *strings.Builder, f Field, indent int) {
	pad := strings.Repeat("  ", indent)
	switch f.Value.Kind {
	case KindList:
		if len(f.Value.List) == 0 {
			b.WriteString(pad + f.Key + ": []\n")
			return
		}
		b.WriteString(pad + f.Key + ":\n")
		for _, item := range f.Value.List {
			b.WriteString(pad + "  - " + encodeScalar(item) + "\n")
		}
	case KindObject:
		b.WriteString(pad + f.Key + ":\n")
		for _, sub := range f.Value.Fields {
			writeField(b, sub, indent+1)
		}
	case KindString:
		if strings.Contains(f.Value.Str, "\n") && indent == 0 {
			writeBlockLiteral(b, f.Key, f.Value.Str)
			return
		}
		b.WriteString(pad + f.Key + ": " + encodeScalar(f.Value) + "\n")
	default:
		b.WriteString(pad + f.Key + ": " + encodeScalar(f.Value) + "\n")
	}
}

// writeBlockLiteral emits a multi-line string as "key: |" followed by the
// lines indented two spaces.
func writeBlockLiteral(b *strings.Builder, key, s string) {
	b.WriteString(key + ": |\n")
	for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		if line == "" {
			b.WriteByte('\n')
			continue
		}
		b.WriteString("  " + line + "\n")
	}
}

func encodeScalar(v Value) string {
	switch v.Kind {
	case KindInt:
		return strconv.Itoa(v.Int)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindNull:
		return "null"
	default:
		return encodeString(v.Str)
	}
}

func encodeString(s string) string {
	if needsQuoting(s) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuoting(s string) bool {
	if reservedScalars[strings.ToLower(s)] {
		return true
	}
	if numberLike.MatchString(s) {
		return true
	}
	return unsafeScalar.MatchString(s)
}
