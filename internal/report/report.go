// Package report renders author dates for humans.
package report

import (
	"bytes"
	"io"

	"github.com/thiagokokada/git-lastseen/internal/lastseen"
)

// Pretty output is a Python dict literal, so that lexer colours it.
const prettyLexer = "python"

// Options controls Write.
type Options struct {
	Color ColorMode
	// IsTerminal reports whether the destination is a terminal; consulted
	// only for ColorAuto.
	IsTerminal bool
}

// Write renders dates to w, highlighting the output when opts ask for it.
func Write(w io.Writer, dates *lastseen.AuthorDates, opts Options) error {
	var buf bytes.Buffer
	if err := Pretty(&buf, dates); err != nil {
		return err
	}
	theme, ok := opts.Color.theme(opts.IsTerminal)
	if !ok {
		_, err := w.Write(buf.Bytes())
		return err
	}
	return Highlight(w, buf.String(), prettyLexer, theme)
}
