package outwriter

import (
	"os"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/contract"
	"golang.org/x/term"
)

// GetMaxTableTextWidth calculates the maximum width for statement text in
// table output based on terminal width and table configuration.
func GetMaxTableTextWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for fixed columns with table formatting:
	// block id, statement id, facet, domain, desirability, borders and padding
	baseWidth := 55

	// Calculate available space for statement text
	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable text width
		return 15
	}
	if available > 70 {
		// Maximum text width to prevent overly long rows
		return 70
	}
	return available
}

// truncateText truncates statement text to a maximum width with ellipsis suffix.
// Requires maxWidth > 3 to leave room for the ellipsis.
func truncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}
