package output

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/rpgo/networth-planner/internal/domain"
)

// consoleWrap is wide enough for the compact table without wrapping cells.
const consoleWrap = 140

// ConsoleFormatter renders the markdown report for a terminal through glamour.
// The plain "notty" style keeps output free of ANSI escapes so it can be
// piped or written to a file.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(proj *domain.Projection, view View) ([]byte, error) {
	md, err := markdownDocument(proj, view, compactColumns)
	if err != nil {
		return nil, err
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styles.NoTTYStyle),
		glamour.WithWordWrap(consoleWrap),
	)
	if err != nil {
		return nil, err
	}
	return r.RenderBytes(md)
}
