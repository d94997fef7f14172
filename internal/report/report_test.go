package report

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/studytracker/internal/eventstore"
	mock_eventstore "github.com/at-ishikawa/studytracker/internal/mocks/eventstore"
	"github.com/at-ishikawa/studytracker/internal/study"
)

var jst = time.FixedZone("JST", 9*60*60)

// Thursday of the week starting 2025-06-02.
var fixedNow = time.Date(2025, 6, 5, 21, 0, 0, 0, jst)

func newTestGenerator(t *testing.T) (*Generator, *mock_eventstore.MockStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := mock_eventstore.NewMockStore(ctrl)
	g := NewGenerator(store, jst)
	g.now = func() time.Time { return fixedNow }
	return g, store
}

func sessionsTotalling(hours float64) []study.StudySession {
	minutes := int(hours * 60)
	return []study.StudySession{
		{SubjectID: 1, SubjectName: "Math I", Category: study.CategoryMathematics, DurationMinutes: minutes / 2, StudiedAt: time.Date(2025, 6, 2, 19, 0, 0, 0, jst)},
		{SubjectID: 1, SubjectName: "Math I", Category: study.CategoryMathematics, DurationMinutes: minutes - minutes/2, StudiedAt: time.Date(2025, 6, 4, 19, 0, 0, 0, jst)},
	}
}

func TestAdviceFor(t *testing.T) {
	tests := []struct {
		hours float64
		want  Advice
	}{
		{hours: 16, want: AdviceExcellent},
		{hours: 15, want: AdviceExcellent},
		{hours: 14.99, want: AdviceGood},
		{hours: 12, want: AdviceGood},
		{hours: 10, want: AdviceGood},
		{hours: 9.99, want: AdviceNeedsImprovement},
		{hours: 5, want: AdviceNeedsImprovement},
		{hours: 0, want: AdviceNeedsImprovement},
	}

	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			assert.Equal(t, tt.want, AdviceFor(tt.hours))
			assert.NotEmpty(t, tt.want.Message())
		})
	}
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		input   string
		want    Period
		wantErr bool
	}{
		{input: "week", want: Week()},
		{input: " Month ", want: Month()},
		{input: "semester", want: Semester()},
		{input: "year", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePeriod(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPeriod)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAnalysisWindow(t *testing.T) {
	got, err := ParseAnalysisWindow("")
	require.NoError(t, err)
	assert.Equal(t, LastWeek, got)

	got, err = ParseAnalysisWindow("QUARTER")
	require.NoError(t, err)
	assert.Equal(t, LastQuarter, got)
	assert.Equal(t, 90, got.Days())
	assert.Equal(t, 0, AllTime.Days())

	_, err = ParseAnalysisWindow("decade")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestGenerator_Generate(t *testing.T) {
	week := eventstore.Interval{
		Start: time.Date(2025, 6, 2, 0, 0, 0, 0, jst),
		End:   time.Date(2025, 6, 9, 0, 0, 0, 0, jst),
	}

	tests := []struct {
		name    string
		period  Period
		setup   func(store *mock_eventstore.MockStore)
		want    Report
		wantErr error
	}{
		{
			name:   "weekly report with subjects and satisfaction",
			period: Week(),
			setup: func(store *mock_eventstore.MockStore) {
				store.EXPECT().
					StudySessions(gomock.Any(), eventstore.Query{UserID: 1, Interval: week}).
					Return([]study.StudySession{
						{SubjectID: 1, SubjectName: "subjectA", Category: study.CategoryMathematics, DurationMinutes: 60, SatisfactionScore: ptr(4), StudiedAt: time.Date(2025, 6, 2, 9, 0, 0, 0, jst)},
						{SubjectID: 1, SubjectName: "subjectA", Category: study.CategoryMathematics, DurationMinutes: 30, StudiedAt: time.Date(2025, 6, 2, 20, 0, 0, 0, jst)},
						{SubjectID: 2, SubjectName: "subjectB", Category: study.CategoryEnglish, DurationMinutes: 45, SatisfactionScore: ptr(3), StudiedAt: time.Date(2025, 6, 3, 9, 0, 0, 0, jst)},
					}, nil)
			},
			want: Report{
				UserID:           1,
				Status:           StatusAvailable,
				Period:           PeriodWeek,
				Interval:         &week,
				TotalHours:       2.25,
				SessionCount:     3,
				MeanSatisfaction: 3.5,
				HasSatisfaction:  true,
				Subjects: []SubjectHours{
					{SubjectID: 1, SubjectName: "subjectA", Category: study.CategoryMathematics, Hours: 1.5},
					{SubjectID: 2, SubjectName: "subjectB", Category: study.CategoryEnglish, Hours: 0.75},
				},
				Advice:      AdviceNeedsImprovement,
				GeneratedAt: fixedNow,
			},
		},
		{
			name:   "empty week is a report with zeros",
			period: Week(),
			setup: func(store *mock_eventstore.MockStore) {
				store.EXPECT().StudySessions(gomock.Any(), gomock.Any()).Return([]study.StudySession{}, nil)
			},
			want: Report{
				UserID:      1,
				Status:      StatusAvailable,
				Period:      PeriodWeek,
				Interval:    &week,
				Subjects:    []SubjectHours{},
				Advice:      AdviceNeedsImprovement,
				GeneratedAt: fixedNow,
			},
		},
		{
			name:   "month is not yet available",
			period: Month(),
			setup:  func(store *mock_eventstore.MockStore) {},
			want: Report{
				UserID:      1,
				Status:      StatusUnavailable,
				Period:      PeriodMonth,
				Message:     "not yet available",
				GeneratedAt: fixedNow,
			},
		},
		{
			name:   "semester is not yet available",
			period: Semester(),
			setup:  func(store *mock_eventstore.MockStore) {},
			want: Report{
				UserID:      1,
				Status:      StatusUnavailable,
				Period:      PeriodSemester,
				Message:     "not yet available",
				GeneratedAt: fixedNow,
			},
		},
		{
			name:    "custom period must start before it ends",
			period:  Custom(week.End, week.Start),
			setup:   func(store *mock_eventstore.MockStore) {},
			wantErr: ErrInvalidPeriod,
		},
		{
			name:    "unknown period kind",
			period:  Period{Kind: "decade"},
			setup:   func(store *mock_eventstore.MockStore) {},
			wantErr: ErrInvalidPeriod,
		},
		{
			name:   "storage failure aborts the report",
			period: Week(),
			setup: func(store *mock_eventstore.MockStore) {
				store.EXPECT().
					StudySessions(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("query: %w", eventstore.ErrStorageUnavailable))
			},
			wantErr: eventstore.ErrStorageUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, store := newTestGenerator(t)
			tt.setup(store)

			got, err := g.Generate(context.Background(), 1, tt.period)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerator_Generate_AdviceTiers(t *testing.T) {
	tests := []struct {
		hours float64
		want  Advice
	}{
		{hours: 16, want: AdviceExcellent},
		{hours: 12, want: AdviceGood},
		{hours: 5, want: AdviceNeedsImprovement},
	}

	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			g, store := newTestGenerator(t)
			store.EXPECT().StudySessions(gomock.Any(), gomock.Any()).Return(sessionsTotalling(tt.hours), nil)

			got, err := g.Generate(context.Background(), 1, Week())
			require.NoError(t, err)
			assert.Equal(t, tt.hours, got.TotalHours)
			assert.Equal(t, tt.want, got.Advice)
		})
	}
}

func TestGenerator_Generate_Custom(t *testing.T) {
	g, store := newTestGenerator(t)
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, jst)
	end := time.Date(2025, 5, 1, 0, 0, 0, 0, jst)

	store.EXPECT().
		StudySessions(gomock.Any(), eventstore.Query{UserID: 3, Interval: eventstore.Interval{Start: start, End: end}}).
		Return(sessionsTotalling(11), nil)

	got, err := g.Generate(context.Background(), 3, Custom(start, end))
	require.NoError(t, err)
	assert.Equal(t, PeriodCustom, got.Period)
	assert.Equal(t, AdviceGood, got.Advice)
	assert.Equal(t, "2025-04-01..2025-05-01", Custom(start, end).String())
}

func ptr(v int) *int {
	return &v
}
