// Package render colors text and draws banners for the line protocol.
package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Style is a cosmetic hint. It never changes what a line means.
type Style int

const (
	Plain Style = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Error
)

var colors = map[Style]lipgloss.Color{
	Red:     lipgloss.Color("1"),
	Green:   lipgloss.Color("2"),
	Yellow:  lipgloss.Color("3"),
	Blue:    lipgloss.Color("4"),
	Magenta: lipgloss.Color("5"),
	Error:   lipgloss.Color("1"),
}

// Renderer turns text plus a style hint into what is written to one client.
// Remote clients cannot be probed for terminal capabilities, so the color
// profile is fixed up front.
type Renderer struct {
	r     *lipgloss.Renderer
	color bool
}

// New returns a renderer that emits ANSI colors when color is set and plain
// text otherwise.
func New(color bool) *Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	if color {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{r: r, color: color}
}

// Text colors text. Plain text and a color-less renderer return text unchanged.
func (rd *Renderer) Text(text string, s Style) string {
	if !rd.color || s == Plain {
		return text
	}
	style := rd.r.NewStyle().Bold(true).Foreground(colors[s])
	if s == Error {
		style = style.Background(lipgloss.Color("11"))
	}
	return style.Render(text)
}

// Banner draws text big: upper-cased inside a double border.
func (rd *Renderer) Banner(text string, s Style) string {
	style := rd.r.NewStyle().
		Border(lipgloss.DoubleBorder()).
		Padding(0, 3).
		Bold(true)
	if rd.color && s != Plain {
		style = style.Foreground(colors[s]).BorderForeground(colors[s])
	}
	return style.Render(strings.ToUpper(text))
}
