package render

import "github.com/fatih/color"

// Styles is the terminal styling capability handed explicitly to every
// layer that prints. Construct it once from config; nothing reaches
// into ambient color state.
type Styles struct {
	Cyan    *color.Color
	Green   *color.Color
	Yellow  *color.Color
	Red     *color.Color
	Magenta *color.Color
	Bold    *color.Color
	Grey    *color.Color
	Plain   *color.Color
}

// NewStyles builds the style set. With enabled false every style prints
// bare text, which keeps column math identical either way.
func NewStyles(enabled bool) *Styles {
	s := &Styles{
		Cyan:    color.New(color.FgHiCyan),
		Green:   color.New(color.FgHiGreen),
		Yellow:  color.New(color.FgHiYellow),
		Red:     color.New(color.FgHiRed),
		Magenta: color.New(color.FgHiMagenta),
		Bold:    color.New(color.Bold),
		Grey:    color.New(color.FgHiBlack),
		Plain:   color.New(),
	}
	if !enabled {
		for _, c := range []*color.Color{s.Cyan, s.Green, s.Yellow, s.Red, s.Magenta, s.Bold, s.Grey, s.Plain} {
			c.DisableColor()
		}
	} else {
		for _, c := range []*color.Color{s.Cyan, s.Green, s.Yellow, s.Red, s.Magenta, s.Bold, s.Grey, s.Plain} {
			c.EnableColor()
		}
	}
	return s
}
