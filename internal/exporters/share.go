package exporters

import (
	"fmt"
	"strings"

	"github.com/mrlokans/selah/internal/entities"
)

// FormatVerseForShare quotes a verse, followed by its reference when asked.
func FormatVerseForShare(verse entities.Verse, includeReference bool) string {
	quote := `"` + verse.Text + `"`
	if !includeReference {
		return quote
	}
	return quote + "\n\n— " + verse.Reference
}

// FormatPassageForShare numbers each verse on its own line and ends with the
// passage reference.
func FormatPassageForShare(verses []entities.Verse, reference string) string {
	var b strings.Builder
	for i, v := range verses {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", v.Number, v.Text)
	}
	b.WriteString("\n\n— ")
	b.WriteString(reference)
	return b.String()
}
