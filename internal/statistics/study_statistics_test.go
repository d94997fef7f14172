package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/studytracker/internal/study"
)

var jst = time.FixedZone("JST", 9*60*60)

func session(subjectID int64, name string, category study.Category, minutes int, at time.Time) study.StudySession {
	return study.StudySession{
		SubjectID:       subjectID,
		SubjectName:     name,
		Category:        category,
		DurationMinutes: minutes,
		StudiedAt:       at,
	}
}

func intPtr(v int) *int {
	return &v
}

func TestDailyTotals(t *testing.T) {
	day1 := time.Date(2025, 6, 2, 9, 0, 0, 0, jst)
	day2 := time.Date(2025, 6, 3, 20, 0, 0, 0, jst)

	tests := []struct {
		name     string
		sessions []study.StudySession
		want     []DailyTotal
	}{
		{
			name:     "no sessions",
			sessions: nil,
			want:     []DailyTotal{},
		},
		{
			name: "sessions on the same date are summed into one bucket",
			sessions: []study.StudySession{
				session(1, "Math I", study.CategoryMathematics, 0, day1),
				session(1, "Math I", study.CategoryMathematics, 25, day1.Add(time.Hour)),
				session(2, "Physics", study.CategoryScience, 35, day1.Add(5*time.Hour)),
			},
			want: []DailyTotal{
				{Date: time.Date(2025, 6, 2, 0, 0, 0, 0, jst), TotalMinutes: 60},
			},
		},
		{
			name: "dates are ascending and gaps are omitted",
			sessions: []study.StudySession{
				session(1, "Math I", study.CategoryMathematics, 30, day2.AddDate(0, 0, 3)),
				session(1, "Math I", study.CategoryMathematics, 45, day1),
				session(1, "Math I", study.CategoryMathematics, 15, day2),
			},
			want: []DailyTotal{
				{Date: time.Date(2025, 6, 2, 0, 0, 0, 0, jst), TotalMinutes: 45},
				{Date: time.Date(2025, 6, 3, 0, 0, 0, 0, jst), TotalMinutes: 15},
				{Date: time.Date(2025, 6, 6, 0, 0, 0, 0, jst), TotalMinutes: 30},
			},
		},
		{
			name: "calendar date uses the aggregation location",
			sessions: []study.StudySession{
				// 2025-06-02 23:30 UTC is 2025-06-03 08:30 in JST
				session(1, "Math I", study.CategoryMathematics, 40, time.Date(2025, 6, 2, 23, 30, 0, 0, time.UTC)),
			},
			want: []DailyTotal{
				{Date: time.Date(2025, 6, 3, 0, 0, 0, 0, jst), TotalMinutes: 40},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DailyTotals(tt.sessions, jst))
		})
	}
}

func TestDailyTotals_SameDateSumsAllDurations(t *testing.T) {
	at := time.Date(2025, 1, 15, 6, 0, 0, 0, jst)
	for n := 1; n <= 12; n++ {
		sessions := make([]study.StudySession, 0, n)
		sum := 0
		for i := 0; i < n; i++ {
			minutes := i * 7
			sum += minutes
			sessions = append(sessions, session(int64(i%3+1), "s", study.CategoryOther, minutes, at.Add(time.Duration(i)*time.Minute)))
		}
		got := DailyTotals(sessions, jst)
		require.Len(t, got, 1)
		assert.Equal(t, sum, got[0].TotalMinutes)
	}
}

func TestSubjectTotals(t *testing.T) {
	at := time.Date(2025, 6, 2, 9, 0, 0, 0, jst)

	tests := []struct {
		name     string
		sessions []study.StudySession
		want     []SubjectTotal
	}{
		{
			name: "sorted by total descending",
			sessions: []study.StudySession{
				session(2, "English", study.CategoryEnglish, 20, at),
				session(1, "Math I", study.CategoryMathematics, 50, at),
				session(2, "English", study.CategoryEnglish, 10, at),
			},
			want: []SubjectTotal{
				{SubjectID: 1, SubjectName: "Math I", Category: study.CategoryMathematics, TotalMinutes: 50},
				{SubjectID: 2, SubjectName: "English", Category: study.CategoryEnglish, TotalMinutes: 30},
			},
		},
		{
			name: "ties are broken by name ascending",
			sessions: []study.StudySession{
				session(3, "Physics", study.CategoryScience, 30, at),
				session(4, "Chemistry", study.CategoryScience, 30, at),
				session(5, "Biology", study.CategoryScience, 10, at),
			},
			want: []SubjectTotal{
				{SubjectID: 4, SubjectName: "Chemistry", Category: study.CategoryScience, TotalMinutes: 30},
				{SubjectID: 3, SubjectName: "Physics", Category: study.CategoryScience, TotalMinutes: 30},
				{SubjectID: 5, SubjectName: "Biology", Category: study.CategoryScience, TotalMinutes: 10},
			},
		},
		{
			name:     "empty",
			sessions: []study.StudySession{},
			want:     []SubjectTotal{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SubjectTotals(tt.sessions))
		})
	}
}

func TestSubjectTotals_Deterministic(t *testing.T) {
	at := time.Date(2025, 6, 2, 9, 0, 0, 0, jst)
	sessions := []study.StudySession{
		session(1, "Zoology", study.CategoryScience, 15, at),
		session(2, "Algebra", study.CategoryMathematics, 15, at),
		session(3, "Modern Japanese", study.CategoryJapanese, 15, at),
	}
	want := []string{"Algebra", "Modern Japanese", "Zoology"}
	for i := 0; i < 20; i++ {
		var got []string
		for _, total := range SubjectTotals(sessions) {
			got = append(got, total.SubjectName)
		}
		assert.Equal(t, want, got)
	}
}

func TestCategoryTotals(t *testing.T) {
	at := time.Date(2025, 6, 2, 9, 0, 0, 0, jst)
	sessions := []study.StudySession{
		session(1, "Math I", study.CategoryMathematics, 30, at),
		session(2, "Math A", study.CategoryMathematics, 30, at),
		session(3, "Physics", study.CategoryScience, 60, at),
		session(4, "English", study.CategoryEnglish, 15, at),
	}

	assert.Equal(t, []CategoryTotal{
		{Category: study.CategoryMathematics, TotalMinutes: 60},
		{Category: study.CategoryScience, TotalMinutes: 60},
		{Category: study.CategoryEnglish, TotalMinutes: 15},
	}, CategoryTotals(sessions))
}

func TestHourlyTotals(t *testing.T) {
	sessions := []study.StudySession{
		session(1, "Math I", study.CategoryMathematics, 30, time.Date(2025, 6, 2, 21, 10, 0, 0, jst)),
		session(1, "Math I", study.CategoryMathematics, 20, time.Date(2025, 6, 5, 21, 50, 0, 0, jst)),
		session(2, "English", study.CategoryEnglish, 45, time.Date(2025, 6, 3, 7, 0, 0, 0, jst)),
		session(2, "English", study.CategoryEnglish, 10, time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)),
	}

	got := HourlyTotals(sessions, jst)
	assert.Equal(t, map[int]int{21: 50, 7: 45, 9: 10}, got)

	hour, ok := PeakHour(got)
	assert.True(t, ok)
	assert.Equal(t, 21, hour)
}

func TestPeakHour(t *testing.T) {
	_, ok := PeakHour(map[int]int{})
	assert.False(t, ok)

	hour, ok := PeakHour(map[int]int{22: 30, 6: 30, 12: 10})
	assert.True(t, ok)
	assert.Equal(t, 6, hour)
}

func TestBasicStats(t *testing.T) {
	t.Run("empty input yields zeros", func(t *testing.T) {
		assert.Equal(t, Stats{Mean: 0, Max: 0, Sum: 0, Count: 0}, BasicStats(nil, jst))
		assert.Equal(t, Stats{}, BasicStats([]study.StudySession{}, jst))
	})

	t.Run("stats over per-day totals in hours", func(t *testing.T) {
		sessions := []study.StudySession{
			session(1, "Math I", study.CategoryMathematics, 60, time.Date(2025, 6, 2, 9, 0, 0, 0, jst)),
			session(1, "Math I", study.CategoryMathematics, 30, time.Date(2025, 6, 2, 19, 0, 0, 0, jst)),
			session(2, "English", study.CategoryEnglish, 45, time.Date(2025, 6, 3, 9, 0, 0, 0, jst)),
		}
		got := BasicStats(sessions, jst)
		assert.Equal(t, 2, got.Count)
		assert.InDelta(t, 2.25, got.Sum, 1e-9)
		assert.InDelta(t, 1.5, got.Max, 1e-9)
		assert.InDelta(t, 1.125, got.Mean, 1e-9)
	})
}

func TestStudyDays(t *testing.T) {
	sessions := []study.StudySession{
		session(1, "Math I", study.CategoryMathematics, 60, time.Date(2025, 6, 2, 9, 0, 0, 0, jst)),
		session(2, "English", study.CategoryEnglish, 30, time.Date(2025, 6, 2, 19, 0, 0, 0, jst)),
		session(2, "English", study.CategoryEnglish, 45, time.Date(2025, 6, 4, 9, 0, 0, 0, jst)),
	}
	assert.Equal(t, 2, StudyDays(sessions, jst))
	assert.Equal(t, 0, StudyDays(nil, jst))
}

func TestMeanSatisfaction(t *testing.T) {
	at := time.Date(2025, 6, 2, 9, 0, 0, 0, jst)

	_, ok := MeanSatisfaction(nil)
	assert.False(t, ok)

	unscored := []study.StudySession{session(1, "Math I", study.CategoryMathematics, 30, at)}
	mean, ok := MeanSatisfaction(unscored)
	assert.False(t, ok)
	assert.Equal(t, 0.0, mean)

	scored := []study.StudySession{
		{DurationMinutes: 30, SatisfactionScore: intPtr(4), StudiedAt: at},
		{DurationMinutes: 30, StudiedAt: at},
		{DurationMinutes: 30, SatisfactionScore: intPtr(5), StudiedAt: at},
	}
	mean, ok = MeanSatisfaction(scored)
	assert.True(t, ok)
	assert.InDelta(t, 4.5, mean, 1e-9)
}

func TestHoursAndTotalMinutes(t *testing.T) {
	assert.Equal(t, 1.5, Hours(90))
	assert.Equal(t, 0.0, Hours(0))
	assert.InDelta(t, 0.75, Hours(45), 1e-12)

	sessions := []study.StudySession{{DurationMinutes: 60}, {DurationMinutes: 30}, {DurationMinutes: 45}}
	assert.Equal(t, 135, TotalMinutes(sessions))
}

// Every session contributes exactly once to the date, subject, category
// and hour aggregates.
func TestAggregatesPreserveTotals(t *testing.T) {
	sessions := []study.StudySession{
		session(1, "Math I", study.CategoryMathematics, 60, time.Date(2025, 6, 2, 9, 0, 0, 0, jst)),
		session(1, "Math I", study.CategoryMathematics, 30, time.Date(2025, 6, 2, 9, 30, 0, 0, jst)),
		session(2, "English", study.CategoryEnglish, 45, time.Date(2025, 6, 3, 23, 59, 0, 0, jst)),
		session(3, "Physics", study.CategoryScience, 5, time.Date(2025, 6, 9, 0, 0, 0, 0, jst)),
	}
	want := TotalMinutes(sessions)

	sum := 0
	for _, d := range DailyTotals(sessions, jst) {
		sum += d.TotalMinutes
	}
	assert.Equal(t, want, sum)

	sum = 0
	for _, s := range SubjectTotals(sessions) {
		sum += s.TotalMinutes
	}
	assert.Equal(t, want, sum)

	sum = 0
	for _, c := range CategoryTotals(sessions) {
		sum += c.TotalMinutes
	}
	assert.Equal(t, want, sum)

	sum = 0
	for _, m := range HourlyTotals(sessions, jst) {
		sum += m
	}
	assert.Equal(t, want, sum)
}
