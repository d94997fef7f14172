package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/studytracker/internal/eventstore"
	"github.com/at-ishikawa/studytracker/internal/goals"
	"github.com/at-ishikawa/studytracker/internal/report"
)

func newTestClient(t *testing.T, handler func(t *testing.T, w http.ResponseWriter, r *http.Request)) *Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler(t, w, r)
	}))
	t.Cleanup(server.Close)
	return NewClient(server.URL, time.Second)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write([]byte(body))
	require.NoError(t, err)
}

func TestClient_Report(t *testing.T) {
	tests := []struct {
		name              string
		period            report.Period
		mockServerHandler func(t *testing.T, w http.ResponseWriter, r *http.Request)

		want          report.Report
		wantErrorIs   error
		wantErrorCode int
	}{
		{
			name:   "weekly report",
			period: report.Week(),
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/v1/users/1/reports/week", r.URL.Path)
				assert.Empty(t, r.URL.RawQuery)
				writeJSON(t, w, http.StatusOK, `{"user_id":1,"status":"available","period":"week","total_hours":16,"session_count":2,"subjects":[{"subject_id":1,"subject_name":"Math I","category":"mathematics","hours":10}],"advice":"excellent"}`)
			},
			want: report.Report{
				UserID:       1,
				Status:       report.StatusAvailable,
				Period:       report.PeriodWeek,
				TotalHours:   16,
				SessionCount: 2,
				Subjects: []report.SubjectHours{
					{SubjectID: 1, SubjectName: "Math I", Category: "mathematics", Hours: 10},
				},
				Advice: report.AdviceExcellent,
			},
		},
		{
			name: "custom range sends an inclusive end date",
			period: report.Custom(
				time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			),
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/users/1/reports/custom", r.URL.Path)
				assert.Equal(t, "2025-05-01", r.URL.Query().Get("from"))
				assert.Equal(t, "2025-05-31", r.URL.Query().Get("to"))
				writeJSON(t, w, http.StatusOK, `{"user_id":1,"status":"available","period":"custom","subjects":[],"advice":"needs_improvement"}`)
			},
			want: report.Report{
				UserID:   1,
				Status:   report.StatusAvailable,
				Period:   report.PeriodCustom,
				Subjects: []report.SubjectHours{},
				Advice:   report.AdviceNeedsImprovement,
			},
		},
		{
			name:   "storage unavailable on the server",
			period: report.Week(),
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusServiceUnavailable, `{"error":"storage unavailable"}`)
			},
			wantErrorIs:   eventstore.ErrStorageUnavailable,
			wantErrorCode: http.StatusServiceUnavailable,
		},
		{
			name:   "bad request",
			period: report.Week(),
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusBadRequest, `{"error":"id must be a positive integer"}`)
			},
			wantErrorIs:   ErrBadRequest,
			wantErrorCode: http.StatusBadRequest,
		},
		{
			name:   "invalid period",
			period: report.Week(),
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusBadRequest, `{"error":"invalid report period: \"fortnight\"","code":"invalid_period"}`)
			},
			wantErrorIs:   report.ErrInvalidPeriod,
			wantErrorCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.mockServerHandler)

			got, err := client.Report(context.Background(), 1, tt.period)
			if tt.wantErrorCode != 0 {
				require.Error(t, err)
				var apiErr *Error
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, tt.wantErrorCode, apiErr.StatusCode)
				if tt.wantErrorIs != nil {
					assert.ErrorIs(t, err, tt.wantErrorIs)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_SubjectDetail_NotFound(t *testing.T) {
	client := newTestClient(t, func(t *testing.T, w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/users/1/subjects/9", r.URL.Path)
		writeJSON(t, w, http.StatusNotFound, `{"error":"subject 9: not found"}`)
	})

	_, err := client.SubjectDetail(context.Background(), 1, 9)
	assert.ErrorIs(t, err, eventstore.ErrNotFound)
	assert.EqualError(t, err, "server responded 404: subject 9: not found")
}

func TestClient_Analysis(t *testing.T) {
	client := newTestClient(t, func(t *testing.T, w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/users/2/analysis", r.URL.Path)
		assert.Equal(t, "quarter", r.URL.Query().Get("window"))
		writeJSON(t, w, http.StatusOK, `{"user_id":2,"window":"quarter","total_minutes":150,"study_days":2,"hourly":{"20":150},"peak_hour":20}`)
	})

	got, err := client.Analysis(context.Background(), 2, report.LastQuarter)
	require.NoError(t, err)
	assert.Equal(t, report.LastQuarter, got.Window)
	assert.Equal(t, 150, got.TotalMinutes)
	assert.Equal(t, map[int]int{20: 150}, got.Hourly)
	require.NotNil(t, got.PeakHour)
	assert.Equal(t, 20, *got.PeakHour)
}

func TestClient_OverviewAndProgress(t *testing.T) {
	client := newTestClient(t, func(t *testing.T, w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/users/1/overview":
			writeJSON(t, w, http.StatusOK, `{"user_id":1,"last_7_days_minutes":90,"month_study_days":3,"quiz_attempts_30_days":4,"weekly_goal_percent":7.5,"recent":[]}`)
		case "/v1/users/1/goals/progress":
			writeJSON(t, w, http.StatusOK, `{"goals":{"weekly_hours":20,"daily_hours":3,"subjects_per_week":5},"weekly_hours":5,"weekly_percent":25}`)
		case "/v1/users/1/profile":
			writeJSON(t, w, http.StatusOK, `{"user":{"id":1,"name":"Hanako"},"total_hours":12.5,"session_count":9}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	overview, err := client.Overview(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 90, overview.Last7DaysMinutes)
	assert.Equal(t, 4, overview.QuizAttempts)

	progress, err := client.GoalProgress(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 20.0, progress.Goals.WeeklyHours)
	assert.Equal(t, 25.0, progress.WeeklyPercent)

	lifetime, err := client.Lifetime(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Hanako", lifetime.User.Name)
	assert.Equal(t, 9, lifetime.SessionCount)
}

func TestClient_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(url, time.Second)
	_, err := client.Overview(context.Background(), 1)
	assert.ErrorIs(t, err, eventstore.ErrStorageUnavailable)
}

func TestClient_Goals(t *testing.T) {
	client := newTestClient(t, func(t *testing.T, w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/users/1/goals", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			writeJSON(t, w, http.StatusOK, `{"weekly_hours":20,"daily_hours":3,"subjects_per_week":5}`)
		case http.MethodPut:
			var body goals.Goals
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			if body.WeeklyHours <= 0 {
				writeJSON(t, w, http.StatusBadRequest, `{"error":"invalid goal configuration: weekly_hours must be greater than 0","code":"invalid_configuration"}`)
				return
			}
			writeJSON(t, w, http.StatusOK, `{"weekly_hours":10,"daily_hours":2,"subjects_per_week":3}`)
		}
	})
	ctx := context.Background()

	got, err := client.Goals(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, goals.DefaultGoals(), got)

	saved, err := client.SetGoals(ctx, 1, goals.Goals{WeeklyHours: 10, DailyHours: 2, SubjectsPerWeek: 3})
	require.NoError(t, err)
	assert.Equal(t, goals.Goals{WeeklyHours: 10, DailyHours: 2, SubjectsPerWeek: 3}, saved)

	_, err = client.SetGoals(ctx, 1, goals.Goals{DailyHours: 2, SubjectsPerWeek: 3})
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "weekly_hours must be greater than 0")
	assert.ErrorIs(t, err, goals.ErrInvalidConfiguration)
	assert.ErrorIs(t, err, ErrBadRequest)
}
