package report

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/aymanbagabas/go-udiff"
	"github.com/muesli/termenv"
)

// Diff returns a unified diff between the original and updated content of
// the file at path. It is empty when the contents are equal.
func Diff(path string, original, updated []byte) string {
	return udiff.Unified("a/"+path, "b/"+path, string(original), string(updated))
}

func (p *Printer) highlightDiff(diff string) string {
	return p.highlight("diff", diff)
}

// Source writes src, highlighted as lang when the output supports colors.
func (p *Printer) Source(lang string, src []byte) error {
	_, err := fmt.Fprint(p.w, p.highlight(lang, string(src)))
	if err != nil {
		return fmt.Errorf("write source: %w", err)
	}

	return nil
}

func (p *Printer) highlight(lang, src string) string {
	formatterName := ""
	switch p.profile {
	case termenv.TrueColor:
		formatterName = "terminal16m"
	case termenv.ANSI256:
		formatterName = "terminal256"
	case termenv.ANSI:
		formatterName = "terminal8"
	case termenv.Ascii:
		return src
	}

	lexer := lexers.Get(lang)
	if lexer == nil {
		return src
	}

	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, src)
	if err != nil {
		slog.Debug("tokenize source", slog.String("lang", lang), slog.Any("error", err))
		return src
	}

	b := &bytes.Buffer{}

	err = formatters.Get(formatterName).Format(b, p.style, iterator)
	if err != nil {
		slog.Debug("format source", slog.String("lang", lang), slog.Any("error", err))
		return src
	}

	return b.String()
}
