// Package planning builds reading plans and derives their progress.
package planning

import (
	"fmt"
	"sort"

	"github.com/mrlokans/selah/internal/entities"
)

// Range is an inclusive chapter span read on a single day.
type Range struct {
	Start int
	End   int
}

// Segment is the consecutive run of days spent in one book.
type Segment struct {
	Book   string
	Ranges []Range
}

// Build lays segments out on consecutive days starting at day 1.
func Build(id, name, description string, segments ...Segment) entities.ReadingPlan {
	plan := entities.ReadingPlan{ID: id, Name: name, Description: description}
	day := 1
	for _, seg := range segments {
		for _, r := range seg.Ranges {
			plan.Days = append(plan.Days, entities.ReadingPlanDay{
				PlanID:       id,
				Day:          day,
				BookID:       seg.Book,
				StartChapter: r.Start,
				EndChapter:   r.End,
			})
			day++
		}
	}
	plan.TotalDays = len(plan.Days)
	return plan
}

// Evenly splits chapters 1..chapters into days of perDay chapters; the last
// day takes the remainder.
func Evenly(book string, chapters, perDay int) Segment {
	seg := Segment{Book: book}
	if perDay < 1 {
		perDay = 1
	}
	for start := 1; start <= chapters; start += perDay {
		end := start + perDay - 1
		if end > chapters {
			end = chapters
		}
		seg.Ranges = append(seg.Ranges, Range{Start: start, End: end})
	}
	return seg
}

func spans(pairs ...[2]int) []Range {
	out := make([]Range, len(pairs))
	for i, p := range pairs {
		out[i] = Range{Start: p[0], End: p[1]}
	}
	return out
}

const (
	PsalmsPlanID   = "psalms-30"
	GospelsPlanID  = "gospels-40"
	ProverbsPlanID = "proverbs-31"
)

// Presets returns the built-in plan catalog. Each call returns fresh values.
func Presets() []entities.ReadingPlan {
	return []entities.ReadingPlan{
		Build(PsalmsPlanID, "Psaumes en 30 jours",
			"Lisez les 150 chapitres des Psaumes en 30 jours",
			Evenly("PSA", 150, 5)),
		Build(GospelsPlanID, "Évangiles en 40 jours",
			"Lisez les 4 évangiles (Matthieu, Marc, Luc, Jean) en 40 jours",
			Segment{Book: "MAT", Ranges: spans(
				[2]int{1, 3}, [2]int{4, 6}, [2]int{7, 9}, [2]int{10, 12}, [2]int{13, 15},
				[2]int{16, 18}, [2]int{19, 21}, [2]int{22, 24}, [2]int{25, 26}, [2]int{27, 28},
			)},
			Evenly("MRK", 16, 2),
			Evenly("LUK", 24, 2),
			Segment{Book: "JHN", Ranges: spans(
				[2]int{1, 2}, [2]int{3, 4}, [2]int{5, 6}, [2]int{7, 8}, [2]int{9, 10},
				[2]int{11, 12}, [2]int{13, 14}, [2]int{15, 16}, [2]int{17, 18}, [2]int{19, 21},
			)},
		),
		Build(ProverbsPlanID, "Proverbes en 31 jours",
			"Un chapitre des Proverbes chaque jour pendant un mois",
			Evenly("PRO", 31, 1)),
	}
}

// ValidateDays checks that days are numbered 1..n without gaps and that every
// range is well formed.
func ValidateDays(days []entities.ReadingPlanDay) error {
	if len(days) == 0 {
		return fmt.Errorf("%w: plan has no days", entities.ErrInvalidPlan)
	}
	sorted := append([]entities.ReadingPlanDay(nil), days...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Day < sorted[j].Day })
	for i, d := range sorted {
		if d.Day != i+1 {
			return fmt.Errorf("%w: expected day %d, found day %d", entities.ErrInvalidPlan, i+1, d.Day)
		}
		if d.BookID == "" {
			return fmt.Errorf("%w: day %d has no book", entities.ErrInvalidPlan, d.Day)
		}
		if d.StartChapter < 1 || d.EndChapter < d.StartChapter {
			return fmt.Errorf("%w: day %d range %d-%d", entities.ErrInvalidPlan, d.Day, d.StartChapter, d.EndChapter)
		}
	}
	return nil
}

// ValidateCoverage checks that each book segment of the plan reads its book
// from chapter 1 to its last chapter exactly once, in order.
func ValidateCoverage(plan entities.ReadingPlan, chapterCounts map[string]int) error {
	if err := ValidateDays(plan.Days); err != nil {
		return err
	}
	if plan.TotalDays != len(plan.Days) {
		return fmt.Errorf("%w: %s declares %d days but has %d", entities.ErrInvalidPlan, plan.ID, plan.TotalDays, len(plan.Days))
	}

	days := append([]entities.ReadingPlanDay(nil), plan.Days...)
	sort.Slice(days, func(i, j int) bool { return days[i].Day < days[j].Day })

	closeSegment := func(book string, last int) error {
		total, ok := chapterCounts[book]
		if !ok {
			return fmt.Errorf("%w: %s: unknown book %s", entities.ErrInvalidPlan, plan.ID, book)
		}
		if last != total {
			return fmt.Errorf("%w: %s: %s ends at chapter %d of %d", entities.ErrInvalidPlan, plan.ID, book, last, total)
		}
		return nil
	}

	book, next := "", 1
	for _, d := range days {
		if d.BookID != book {
			if book != "" {
				if err := closeSegment(book, next-1); err != nil {
					return err
				}
			}
			book, next = d.BookID, 1
		}
		if d.StartChapter != next {
			return fmt.Errorf("%w: %s day %d: %s starts at %d, expected %d",
				entities.ErrInvalidPlan, plan.ID, d.Day, book, d.StartChapter, next)
		}
		next = d.EndChapter + 1
	}
	return closeSegment(book, next-1)
}

// FirstIncompleteDay returns the lowest day not yet completed, or 0 when every
// day is done.
func FirstIncompleteDay(days []entities.ReadingPlanDay) int {
	first := 0
	for _, d := range days {
		if !d.Completed && (first == 0 || d.Day < first) {
			first = d.Day
		}
	}
	return first
}

// Recompute derives CurrentDay and Completed from the day flags. CurrentDay
// only moves past a contiguous prefix of completed days.
func Recompute(plan *entities.ReadingPlan) {
	next := FirstIncompleteDay(plan.Days)
	if next == 0 {
		plan.Completed = true
		plan.CurrentDay = plan.TotalDays
		return
	}
	plan.Completed = false
	plan.CurrentDay = next
}
