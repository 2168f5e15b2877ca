package report

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlight writes text to w with ANSI 256-colour syntax highlighting.
func Highlight(w io.Writer, text, lexerName string, theme Theme) error {
	lexer := lexers.Get(lexerName)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)
	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return fmt.Errorf("tokenise %s: %w", lexerName, err)
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	return formatter.Format(w, styleForTheme(theme), iterator)
}

func styleForTheme(t Theme) *chroma.Style {
	name := "github"
	if t == ThemeDark {
		name = "github-dark"
	}
	if st := styles.Get(name); st != nil {
		return st
	}
	return styles.Fallback
}
