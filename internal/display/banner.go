package display

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var bannerRaw string

// Tagline is printed under the banner art.
const Tagline = "Tell me what's in your fridge. I'll tell you what to cook."

// RenderBanner returns the banner art and tagline centred for the
// current terminal width. To change the art replace banner.txt.
func RenderBanner() string {
	return centreBanner(bannerRaw, termWidth())
}

func centreBanner(raw string, width int) string {
	lines := strings.Split(strings.TrimRight(raw, "\n"), "\n")
	maxW := 0
	for _, l := range lines {
		if len(l) > maxW {
			maxW = len(l)
		}
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(pad(width, maxW))
		b.WriteString(BannerStyle.Render(l))
		b.WriteByte('\n')
	}
	b.WriteString(pad(width, len(Tagline)))
	b.WriteString(secondaryStyle.Render(Tagline))
	b.WriteByte('\n')
	return b.String()
}

func pad(width, content int) string {
	if width <= content {
		return ""
	}
	return strings.Repeat(" ", (width-content)/2)
}

// termWidth returns the current terminal column count, or 80 as fallback.
func termWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
