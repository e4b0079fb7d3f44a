package exporters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mrlokans/selah/internal/canon"
	"github.com/mrlokans/selah/internal/entities"
	"github.com/mrlokans/selah/internal/logger"
)

const (
	FavoritesFileName  = "favoris.md"
	HighlightsFileName = "surlignages.md"
)

type MarkdownExporter struct {
	ExportDir string
	verses    VerseLookup
	log       *logger.Logger
	now       func() time.Time
}

// NewMarkdownExporter writes into exportDir. verses may be nil, in which case
// highlights are exported without their text.
func NewMarkdownExporter(exportDir string, verses VerseLookup, log *logger.Logger) *MarkdownExporter {
	if log == nil {
		log = logger.Discard()
	}
	return &MarkdownExporter{
		ExportDir: exportDir,
		verses:    verses,
		log:       log.WithComponent("export"),
		now:       time.Now,
	}
}

func (exporter *MarkdownExporter) ensureDir() error {
	if err := os.MkdirAll(exporter.ExportDir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	return nil
}

func writeFrontmatter(builder *strings.Builder, contentType, title string, generatedAt time.Time) {
	fmt.Fprintf(builder, "---\n")
	fmt.Fprintf(builder, "content_type: %s\n", contentType)
	fmt.Fprintf(builder, "created_at: %s\n", generatedAt.Format(time.DateOnly))
	fmt.Fprintf(builder, "title: \"%s\"\n", strings.ReplaceAll(title, "\"", "\\\""))
	fmt.Fprintf(builder, "tags: bible, %s\n", contentType)
	fmt.Fprintf(builder, "---\n\n")
}

func quote(text string) string {
	return "> " + strings.ReplaceAll(text, "\n", "\n> ")
}

// GenerateFavoritesMarkdown renders favourites in the order given, each with
// its saved text and note.
func GenerateFavoritesMarkdown(favorites []entities.FavoriteVerse, generatedAt time.Time) string {
	var builder strings.Builder
	writeFrontmatter(&builder, "favorites", "Versets favoris", generatedAt)
	fmt.Fprintf(&builder, "## Favoris\n\n")

	for _, fav := range favorites {
		reference := fav.Reference
		if reference == "" {
			reference = fav.Ref().String()
		}
		fmt.Fprintf(&builder, "### %s\n\n", reference)
		fmt.Fprintf(&builder, "%s\n\n", quote(fav.VerseText))
		if fav.Note != nil && *fav.Note != "" {
			fmt.Fprintf(&builder, "**Note:** %s\n\n", *fav.Note)
		}
		fmt.Fprintf(&builder, "*Ajouté le %s*\n\n", fav.CreatedAt.Format("2006-01-02 15:04"))
	}
	return builder.String()
}

// HighlightLine is a highlight with whatever verse text could be found.
type HighlightLine struct {
	Highlight entities.Highlight
	Reference string
	Text      string
}

// GenerateHighlightsMarkdown groups highlights by color in display order.
func GenerateHighlightsMarkdown(lines []HighlightLine, generatedAt time.Time) string {
	var builder strings.Builder
	writeFrontmatter(&builder, "highlights", "Versets surlignés", generatedAt)

	byColor := make(map[entities.HighlightColor][]HighlightLine)
	for _, line := range lines {
		byColor[line.Highlight.Color] = append(byColor[line.Highlight.Color], line)
	}

	for _, color := range entities.HighlightColors {
		group := byColor[color]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&builder, "## %s\n\n", colorTitle(color))
		for _, line := range group {
			fmt.Fprintf(&builder, "### %s\n\n", line.Reference)
			if line.Text != "" {
				fmt.Fprintf(&builder, "%s\n\n", quote(line.Text))
			}
		}
	}
	return builder.String()
}

func colorTitle(c entities.HighlightColor) string {
	switch c {
	case entities.HighlightYellow:
		return "Jaune"
	case entities.HighlightGreen:
		return "Vert"
	case entities.HighlightBlue:
		return "Bleu"
	}
	return string(c)
}

// displayReference prefers the book's display name: "Jean 3:16".
func displayReference(ref entities.VerseRef) string {
	if entry, ok := canon.Lookup(ref.Book); ok {
		return fmt.Sprintf("%s %d:%d", entry.Name, ref.Chapter, ref.Verse)
	}
	return ref.String()
}

func (exporter *MarkdownExporter) resolve(h entities.Highlight) HighlightLine {
	line := HighlightLine{Highlight: h, Reference: displayReference(h.Ref())}
	if exporter.verses == nil {
		return line
	}
	verse, err := exporter.verses.GetVerse(h.Ref())
	if err != nil {
		exporter.log.Warn("highlight text lookup failed", "ref", h.Ref().String(), "error", err)
		return line
	}
	if verse != nil {
		line.Text = verse.Text
		if verse.Reference != "" {
			line.Reference = verse.Reference
		}
	}
	return line
}

func (exporter *MarkdownExporter) writeFile(name, content string) (string, error) {
	path := filepath.Join(exporter.ExportDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Export writes the favourites file and the highlights file.
func (exporter *MarkdownExporter) Export(source AnnotationReader) (ExportResult, error) {
	result := ExportResult{}
	if err := exporter.ensureDir(); err != nil {
		return result, err
	}
	generatedAt := exporter.now()

	favorites, err := source.ListFavorites()
	if err != nil {
		return result, fmt.Errorf("list favorites: %w", err)
	}
	path, err := exporter.writeFile(FavoritesFileName, GenerateFavoritesMarkdown(favorites, generatedAt))
	if err != nil {
		return result, err
	}
	result.FavoritesExported = len(favorites)
	result.Files = append(result.Files, path)

	highlights, err := source.ListHighlights()
	if err != nil {
		return result, fmt.Errorf("list highlights: %w", err)
	}
	lines := make([]HighlightLine, 0, len(highlights))
	for _, h := range highlights {
		lines = append(lines, exporter.resolve(h))
	}
	path, err = exporter.writeFile(HighlightsFileName, GenerateHighlightsMarkdown(lines, generatedAt))
	if err != nil {
		return result, err
	}
	result.HighlightsExported = len(highlights)
	result.Files = append(result.Files, path)

	exporter.log.Info("export completed",
		"dir", exporter.ExportDir,
		"favorites", result.FavoritesExported,
		"highlights", result.HighlightsExported)
	return result, nil
}
