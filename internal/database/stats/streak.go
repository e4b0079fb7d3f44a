package stats

import (
	"time"

	"github.com/mrlokans/selah/internal/entities"
)

// DaysBetween counts calendar days from a to b in loc, ignoring the time of
// day. It is negative when b is on an earlier day than a.
func DaysBetween(a, b time.Time, loc *time.Location) int {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// ApplyChapterRead advances the stats for one chapter read at now.
//
// A read on the day after the last read extends the streak; a longer gap
// restarts it at 1. ChaptersReadToday restarts once per new calendar day.
// A last-read date in the future (clock moved backwards) counts as today.
func ApplyChapterRead(s entities.ReadingStats, verseCount int, now time.Time, loc *time.Location) entities.ReadingStats {
	switch {
	case s.LastReadDate == nil:
		s.CurrentStreak = 1
		s.ChaptersReadToday = 0
	default:
		gap := DaysBetween(*s.LastReadDate, now, loc)
		switch {
		case gap <= 0:
		case gap == 1:
			s.CurrentStreak++
			s.ChaptersReadToday = 0
		default:
			s.CurrentStreak = 1
			s.ChaptersReadToday = 0
		}
	}
	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}

	s.ChaptersReadToday++
	s.TotalChaptersRead++
	if verseCount > 0 {
		s.TotalVersesRead += verseCount
	}
	last := now
	s.LastReadDate = &last
	return s
}
