// Package canon holds the 66-book Protestant canon: USFM codes, French names,
// chapter counts and categories.
package canon

import (
	"github.com/mrlokans/selah/internal/entities"
)

type Category string

const (
	Pentateuch      Category = "Pentateuque"
	Historical      Category = "Livres historiques"
	Poetic          Category = "Poétiques"
	MajorProphets   Category = "Prophètes majeurs"
	MinorProphets   Category = "Prophètes mineurs"
	Gospels         Category = "Évangiles"
	Acts            Category = "Actes"
	PaulineEpistles Category = "Épîtres de Paul"
	GeneralEpistles Category = "Épîtres générales"
	Revelation      Category = "Apocalypse"
)

type Entry struct {
	ID        string
	Name      string
	Chapters  int
	Testament entities.Testament
	Category  Category
}

const (
	ot = entities.TestamentOld
	nt = entities.TestamentNew
)

var entries = []Entry{
	{"GEN", "Genèse", 50, ot, Pentateuch},
	{"EXO", "Exode", 40, ot, Pentateuch},
	{"LEV", "Lévitique", 27, ot, Pentateuch},
	{"NUM", "Nombres", 36, ot, Pentateuch},
	{"DEU", "Deutéronome", 34, ot, Pentateuch},
	{"JOS", "Josué", 24, ot, Historical},
	{"JDG", "Juges", 21, ot, Historical},
	{"RUT", "Ruth", 4, ot, Historical},
	{"1SA", "1 Samuel", 31, ot, Historical},
	{"2SA", "2 Samuel", 24, ot, Historical},
	{"1KI", "1 Rois", 22, ot, Historical},
	{"2KI", "2 Rois", 25, ot, Historical},
	{"1CH", "1 Chroniques", 29, ot, Historical},
	{"2CH", "2 Chroniques", 36, ot, Historical},
	{"EZR", "Esdras", 10, ot, Historical},
	{"NEH", "Néhémie", 13, ot, Historical},
	{"EST", "Esther", 10, ot, Historical},
	{"JOB", "Job", 42, ot, Poetic},
	{"PSA", "Psaumes", 150, ot, Poetic},
	{"PRO", "Proverbes", 31, ot, Poetic},
	{"ECC", "Ecclésiaste", 12, ot, Poetic},
	{"SNG", "Cantique des cantiques", 8, ot, Poetic},
	{"ISA", "Ésaïe", 66, ot, MajorProphets},
	{"JER", "Jérémie", 52, ot, MajorProphets},
	{"LAM", "Lamentations", 5, ot, MajorProphets},
	{"EZK", "Ézéchiel", 48, ot, MajorProphets},
	{"DAN", "Daniel", 12, ot, MajorProphets},
	{"HOS", "Osée", 14, ot, MinorProphets},
	{"JOL", "Joël", 3, ot, MinorProphets},
	{"AMO", "Amos", 9, ot, MinorProphets},
	{"OBA", "Abdias", 1, ot, MinorProphets},
	{"JON", "Jonas", 4, ot, MinorProphets},
	{"MIC", "Michée", 7, ot, MinorProphets},
	{"NAM", "Nahum", 3, ot, MinorProphets},
	{"HAB", "Habacuc", 3, ot, MinorProphets},
	{"ZEP", "Sophonie", 3, ot, MinorProphets},
	{"HAG", "Aggée", 2, ot, MinorProphets},
	{"ZEC", "Zacharie", 14, ot, MinorProphets},
	{"MAL", "Malachie", 4, ot, MinorProphets},
	{"MAT", "Matthieu", 28, nt, Gospels},
	{"MRK", "Marc", 16, nt, Gospels},
	{"LUK", "Luc", 24, nt, Gospels},
	{"JHN", "Jean", 21, nt, Gospels},
	{"ACT", "Actes", 28, nt, Acts},
	{"ROM", "Romains", 16, nt, PaulineEpistles},
	{"1CO", "1 Corinthiens", 16, nt, PaulineEpistles},
	{"2CO", "2 Corinthiens", 13, nt, PaulineEpistles},
	{"GAL", "Galates", 6, nt, PaulineEpistles},
	{"EPH", "Éphésiens", 6, nt, PaulineEpistles},
	{"PHP", "Philippiens", 4, nt, PaulineEpistles},
	{"COL", "Colossiens", 4, nt, PaulineEpistles},
	{"1TH", "1 Thessaloniciens", 5, nt, PaulineEpistles},
	{"2TH", "2 Thessaloniciens", 3, nt, PaulineEpistles},
	{"1TI", "1 Timothée", 6, nt, PaulineEpistles},
	{"2TI", "2 Timothée", 4, nt, PaulineEpistles},
	{"TIT", "Tite", 3, nt, PaulineEpistles},
	{"PHM", "Philémon", 1, nt, PaulineEpistles},
	{"HEB", "Hébreux", 13, nt, GeneralEpistles},
	{"JAS", "Jacques", 5, nt, GeneralEpistles},
	{"1PE", "1 Pierre", 5, nt, GeneralEpistles},
	{"2PE", "2 Pierre", 3, nt, GeneralEpistles},
	{"1JN", "1 Jean", 5, nt, GeneralEpistles},
	{"2JN", "2 Jean", 1, nt, GeneralEpistles},
	{"3JN", "3 Jean", 1, nt, GeneralEpistles},
	{"JUD", "Jude", 1, nt, GeneralEpistles},
	{"REV", "Apocalypse", 22, nt, Revelation},
}

var byID = func() map[string]Entry {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.ID] = e
	}
	return m
}()

// Entries returns the canon in traditional order. The slice is a copy.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Lookup finds a book by USFM code.
func Lookup(id string) (Entry, bool) {
	e, ok := byID[id]
	return e, ok
}

// At returns the book at a zero-based position in canonical order.
func At(index int) (Entry, bool) {
	if index < 0 || index >= len(entries) {
		return Entry{}, false
	}
	return entries[index], true
}

// OldTestamentSize is the number of books before Matthew.
const OldTestamentSize = 39

// Books converts the canon into storable rows.
func Books() []entities.Book {
	out := make([]entities.Book, len(entries))
	for i, e := range entries {
		out[i] = e.Book()
	}
	return out
}

func (e Entry) Book() entities.Book {
	return entities.Book{ID: e.ID, Name: e.Name, ChapterCount: e.Chapters, Testament: e.Testament}
}

// ChapterCounts maps every USFM code to its number of chapters.
func ChapterCounts() map[string]int {
	out := make(map[string]int, len(entries))
	for _, e := range entries {
		out[e.ID] = e.Chapters
	}
	return out
}
