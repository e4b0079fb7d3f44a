package seed

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/mrlokans/selah/internal/canon"
	"github.com/mrlokans/selah/internal/entities"
)

//go:embed data/*.json
var embeddedData embed.FS

// Dataset is the reference data shipped with the binary.
type Dataset struct {
	Books   []entities.Book
	Verses  []entities.Verse
	Lexicon []entities.LexiconEntry
}

// LoadDataset decodes the embedded verses and lexicon and pairs them with the
// canonical book list.
func LoadDataset() (*Dataset, error) {
	ds := &Dataset{Books: canon.Books()}
	if err := readJSON("data/verses.json", &ds.Verses); err != nil {
		return nil, err
	}
	if err := readJSON("data/lexicon.json", &ds.Lexicon); err != nil {
		return nil, err
	}
	return ds, nil
}

func readJSON(name string, dst any) error {
	data, err := embeddedData.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read embedded %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode embedded %s: %w", name, err)
	}
	return nil
}
