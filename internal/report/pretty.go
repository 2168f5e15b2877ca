package report

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/thiagokokada/git-lastseen/internal/lastseen"
)

const (
	prettyIndent = 4
	prettyWidth  = 80
)

// Pretty writes dates the way Python's pprint renders a dict with indent=4:
// on one line when it fits in 80 columns, otherwise one entry per line.
// Entries keep insertion order.
func Pretty(w io.Writer, dates *lastseen.AuthorDates) error {
	_, err := io.WriteString(w, prettyString(dates)+"\n")
	return err
}

func prettyString(dates *lastseen.AuthorDates) string {
	items := make([]string, 0, dates.Len())
	for name, date := range dates.All() {
		items = append(items, pyRepr(name)+": "+pyRepr(date))
	}
	oneLine := "{" + strings.Join(items, ", ") + "}"
	if utf8.RuneCountInString(oneLine) <= prettyWidth {
		return oneLine
	}
	var b strings.Builder
	b.WriteString("{")
	b.WriteString(strings.Repeat(" ", prettyIndent-1))
	b.WriteString(strings.Join(items, ",\n"+strings.Repeat(" ", prettyIndent)))
	b.WriteString("}")
	return b.String()
}

// pyRepr quotes s like Python's repr of a str.
func pyRepr(s string) string {
	quote := byte('\'')
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		quote = '"'
	}
	var b strings.Builder
	b.WriteByte(quote)
	for _, r := range s {
		switch {
		case r == rune(quote) || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x100 && !unicode.IsPrint(r):
			fmt.Fprintf(&b, `\x%02x`, r)
		case !unicode.IsPrint(r) && r < 0x10000:
			fmt.Fprintf(&b, `\u%04x`, r)
		case !unicode.IsPrint(r):
			fmt.Fprintf(&b, `\U%08x`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(quote)
	return b.String()
}
