package exporters

import "github.com/mrlokans/selah/internal/entities"

// AnnotationReader lists what the user saved.
type AnnotationReader interface {
	ListFavorites() ([]entities.FavoriteVerse, error)
	ListHighlights() ([]entities.Highlight, error)
}

// VerseLookup resolves the text of a highlighted verse. A nil verse means the
// text is unknown and only the reference is written.
type VerseLookup interface {
	GetVerse(ref entities.VerseRef) (*entities.Verse, error)
}

type ExportResult struct {
	FavoritesExported  int      `json:"favorites_exported"`
	HighlightsExported int      `json:"highlights_exported"`
	Files              []string `json:"files"`
}
