// Package statistics aggregates study sessions and quiz results into the
// totals shown on dashboards and reports.
package statistics

import (
	"sort"
	"time"

	"github.com/at-ishikawa/studytracker/internal/study"
)

// DailyTotal is the study time logged on one calendar date.
type DailyTotal struct {
	Date         time.Time `json:"date"` // midnight in the aggregation location
	TotalMinutes int       `json:"total_minutes"`
}

// Hours returns TotalMinutes in hours.
func (d DailyTotal) Hours() float64 {
	return Hours(d.TotalMinutes)
}

// SubjectTotal is the study time logged for one subject.
type SubjectTotal struct {
	SubjectID    int64          `json:"subject_id"`
	SubjectName  string         `json:"subject_name"`
	Category     study.Category `json:"category"`
	TotalMinutes int            `json:"total_minutes"`
}

func (s SubjectTotal) Hours() float64 {
	return Hours(s.TotalMinutes)
}

// CategoryTotal is the study time logged for one curriculum category.
type CategoryTotal struct {
	Category     study.Category `json:"category"`
	TotalMinutes int            `json:"total_minutes"`
}

func (c CategoryTotal) Hours() float64 {
	return Hours(c.TotalMinutes)
}

// Stats summarizes per-day totals. Mean, Max and Sum are in hours; Count
// is the number of days with at least one session.
type Stats struct {
	Mean  float64 `json:"mean_hours"`
	Max   float64 `json:"max_hours"`
	Sum   float64 `json:"sum_hours"`
	Count int     `json:"count"`
}

// Hours converts minutes to hours with exact division.
func Hours(minutes int) float64 {
	return float64(minutes) / 60.0
}

// TotalMinutes sums the duration of every session.
func TotalMinutes(sessions []study.StudySession) int {
	total := 0
	for _, s := range sessions {
		total += s.DurationMinutes
	}
	return total
}

func dateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DailyTotals groups sessions by calendar date in loc and returns one
// entry per date in ascending order. Dates without sessions are omitted.
func DailyTotals(sessions []study.StudySession, loc *time.Location) []DailyTotal {
	byDate := make(map[time.Time]int)
	for _, s := range sessions {
		byDate[dateOf(s.StudiedAt, loc)] += s.DurationMinutes
	}

	totals := make([]DailyTotal, 0, len(byDate))
	for date, minutes := range byDate {
		totals = append(totals, DailyTotal{Date: date, TotalMinutes: minutes})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Date.Before(totals[j].Date)
	})
	return totals
}

// SubjectTotals groups sessions by subject, ordered by total minutes
// descending and then by subject name ascending.
func SubjectTotals(sessions []study.StudySession) []SubjectTotal {
	bySubject := make(map[int64]*SubjectTotal)
	for _, s := range sessions {
		total, ok := bySubject[s.SubjectID]
		if !ok {
			total = &SubjectTotal{
				SubjectID:   s.SubjectID,
				SubjectName: s.SubjectName,
				Category:    s.Category,
			}
			bySubject[s.SubjectID] = total
		}
		total.TotalMinutes += s.DurationMinutes
	}

	totals := make([]SubjectTotal, 0, len(bySubject))
	for _, total := range bySubject {
		totals = append(totals, *total)
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].TotalMinutes != totals[j].TotalMinutes {
			return totals[i].TotalMinutes > totals[j].TotalMinutes
		}
		if totals[i].SubjectName != totals[j].SubjectName {
			return totals[i].SubjectName < totals[j].SubjectName
		}
		return totals[i].SubjectID < totals[j].SubjectID
	})
	return totals
}

// CategoryTotals groups sessions by category with the same ordering as
// SubjectTotals.
func CategoryTotals(sessions []study.StudySession) []CategoryTotal {
	byCategory := make(map[study.Category]int)
	for _, s := range sessions {
		byCategory[s.Category] += s.DurationMinutes
	}

	totals := make([]CategoryTotal, 0, len(byCategory))
	for category, minutes := range byCategory {
		totals = append(totals, CategoryTotal{Category: category, TotalMinutes: minutes})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].TotalMinutes != totals[j].TotalMinutes {
			return totals[i].TotalMinutes > totals[j].TotalMinutes
		}
		return totals[i].Category < totals[j].Category
	})
	return totals
}

// HourlyTotals buckets minutes by the hour of day (0..23) in loc,
// regardless of date. Hours without sessions are absent.
func HourlyTotals(sessions []study.StudySession, loc *time.Location) map[int]int {
	hourly := make(map[int]int)
	for _, s := range sessions {
		hourly[s.StudiedAt.In(loc).Hour()] += s.DurationMinutes
	}
	return hourly
}

// PeakHour returns the hour with the most minutes. Ties go to the earlier
// hour. ok is false when hourly is empty.
func PeakHour(hourly map[int]int) (hour int, ok bool) {
	best := -1
	for h := 0; h < 24; h++ {
		minutes, exists := hourly[h]
		if !exists {
			continue
		}
		if best < 0 || minutes > hourly[best] {
			best = h
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// BasicStats computes mean, max, sum and count over DailyTotals. Empty
// input yields all zeros.
func BasicStats(sessions []study.StudySession, loc *time.Location) Stats {
	daily := DailyTotals(sessions, loc)
	if len(daily) == 0 {
		return Stats{}
	}

	var stats Stats
	for _, d := range daily {
		hours := d.Hours()
		stats.Sum += hours
		if hours > stats.Max {
			stats.Max = hours
		}
	}
	stats.Count = len(daily)
	stats.Mean = stats.Sum / float64(stats.Count)
	return stats
}

// StudyDays counts distinct calendar dates with at least one session.
func StudyDays(sessions []study.StudySession, loc *time.Location) int {
	days := make(map[time.Time]struct{})
	for _, s := range sessions {
		days[dateOf(s.StudiedAt, loc)] = struct{}{}
	}
	return len(days)
}

// MeanSatisfaction averages the satisfaction scores that are present.
// ok is false when no session has a score.
func MeanSatisfaction(sessions []study.StudySession) (mean float64, ok bool) {
	sum, n := 0, 0
	for _, s := range sessions {
		if s.SatisfactionScore == nil {
			continue
		}
		sum += *s.SatisfactionScore
		n++
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}
