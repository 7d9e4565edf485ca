package idea

import (
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/ideabox/internal/errors"
)

const (
	exportTitle = "💡 MY PROJECT IDEAS 💡"
	// exportRule is exactly 50 '=' characters.
	exportRule = "=================================================="
)

// FormatExport renders ideas as the plain-text export document.
// Numbering is 1-based in list order. An empty list yields NOTHING_TO_EXPORT.
func FormatExport(ideas []Idea, exportedAt string) (string, error) {
	if len(ideas) == 0 {
		return "", errors.NewNothingToExport()
	}

	var b strings.Builder
	b.WriteString(exportTitle + "\n")
	b.WriteString(exportRule + "\n\n")

	for i, it := range ideas {
		fmt.Fprintf(&b, "%d. %s\n", i+1, it.Text)
		fmt.Fprintf(&b, "   Added: %s\n\n", it.Date)
	}

	b.WriteString("\n" + exportRule + "\n")
	fmt.Fprintf(&b, "Total: %d ideas\n", len(ideas))
	fmt.Fprintf(&b, "Exported: %s\n", exportedAt)

	return b.String(), nil
}

// ExportFilename returns ideas-<epoch millis>.txt for now.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("ideas-%d.txt", ulid.Timestamp(now))
}
