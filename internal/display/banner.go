package display

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var bannerArt string

// RenderBanner returns the bakery banner centred for the terminal.
func RenderBanner() string {
	return centre(strings.Split(strings.TrimRight(bannerArt, "\n"), "\n"), termWidth())
}

// centre pads every row by the same amount so the block sits in the
// middle of width columns. Rows keep their relative alignment.
func centre(rows []string, width int) string {
	block := 0
	for _, r := range rows {
		block = max(block, lipgloss.Width(r))
	}
	indent := ""
	if width > block {
		indent = strings.Repeat(" ", (width-block)/2)
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(indent)
		b.WriteString(BannerStyle.Render(r))
		b.WriteByte('\n')
	}
	return b.String()
}

func termWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
