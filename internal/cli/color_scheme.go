package cli

import (
	"image/color"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/exp/charmtone"
)

var (
	accentLight = lipgloss.Color("#5A56E0")
	accentDark  = lipgloss.Color("#7571F9")
)

// ColorScheme is the help and error color scheme, using the same accent
// color as reports and prompts.
func ColorScheme(c lipgloss.LightDarkFunc) fang.ColorScheme {
	accent := c(accentLight, accentDark)
	text := c(charmtone.Charcoal, charmtone.Ash)
	subtle := c(charmtone.Squid, charmtone.Oyster)

	return fang.ColorScheme{
		Base:           text,
		Title:          accent,
		Codeblock:      c(charmtone.Salt, lipgloss.Color("#2F2E36")),
		Program:        accent,
		Command:        c(charmtone.Pony, charmtone.Cheeky),
		DimmedArgument: subtle,
		Comment:        subtle,
		Flag:           c(lipgloss.Color("#0CB37F"), charmtone.Guac),
		Argument:       text,
		Description:    text,
		FlagDefault:    c(charmtone.Smoke, charmtone.Squid),
		QuotedString:   c(charmtone.Coral, charmtone.Salmon),
		ErrorHeader: [2]color.Color{
			charmtone.Butter,
			charmtone.Cherry,
		},
	}
}
