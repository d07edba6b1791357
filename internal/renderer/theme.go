package renderer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/richtext/internal/config"
)

// Base colors the configurable colors are drawn against.
const (
	foregroundHex = "#d0d0d0"
	backgroundHex = "#1c1c1c"
)

// Theme holds the terminal styles for every document element.
type Theme struct {
	Text        tcell.Style
	Headline    tcell.Style
	Bullet      tcell.Style
	Quote       tcell.Style
	QuoteBar    tcell.Style
	Code        tcell.Style
	Divider     tcell.Style
	Placeholder tcell.Style
}

// NewTheme builds a theme from the render settings. Colors are hex strings.
func NewTheme(cfg config.RenderConfig) (Theme, error) {
	fg, err := parseColor("foreground", foregroundHex)
	if err != nil {
		return Theme{}, err
	}
	bg, err := parseColor("background", backgroundHex)
	if err != nil {
		return Theme{}, err
	}
	headline, err := parseColor("headline_color", cfg.HeadlineColor)
	if err != nil {
		return Theme{}, err
	}
	quote, err := parseColor("quote_color", cfg.QuoteColor)
	if err != nil {
		return Theme{}, err
	}
	code, err := parseColor("code_background", cfg.CodeBackground)
	if err != nil {
		return Theme{}, err
	}
	divider, err := parseColor("divider_color", cfg.DividerColor)
	if err != nil {
		return Theme{}, err
	}

	text := tcell.StyleDefault.Foreground(toTcell(fg))
	return Theme{
		Text:     text,
		Headline: text.Foreground(toTcell(headline)).Bold(true),
		Bullet:   text.Foreground(toTcell(headline)),
		Quote:    text.Foreground(toTcell(quote)).Italic(true),
		QuoteBar: text.Foreground(toTcell(quote)),
		Code:     text.Background(toTcell(code)),
		Divider:  text.Foreground(toTcell(divider)),
		// Halfway between text and background reads as "not content".
		Placeholder: text.Foreground(toTcell(fg.BlendLab(bg, 0.5).Clamped())).Italic(true),
	}, nil
}

// DefaultTheme returns the theme for the default render settings.
func DefaultTheme() Theme {
	t, err := NewTheme(config.Default().Render)
	if err != nil {
		panic(fmt.Sprintf("renderer: default theme: %v", err))
	}
	return t
}

func parseColor(name, hex string) (colorful.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("theme %s %q: %w", name, hex, err)
	}
	return c, nil
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
