package study

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func intPtr(v int) *int {
	return &v
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Category
		wantErr bool
	}{
		{name: "key", input: "mathematics", want: CategoryMathematics},
		{name: "catalog label", input: "数学", want: CategoryMathematics},
		{name: "label with spaces", input: " 情報 ", want: CategoryInformation},
		{name: "other label", input: "その他", want: CategoryOther},
		{name: "unknown", input: "music", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategory_Scan(t *testing.T) {
	var c Category
	require.NoError(t, c.Scan([]byte("理科")))
	assert.Equal(t, CategoryScience, c)

	require.NoError(t, c.Scan("english"))
	assert.Equal(t, CategoryEnglish, c)

	assert.Error(t, c.Scan(42))
	assert.Error(t, c.Scan("unknown"))
}

func TestCategory_TextAndYAML(t *testing.T) {
	var got struct {
		Category Category `json:"category" yaml:"category"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"category":"英語"}`), &got))
	assert.Equal(t, CategoryEnglish, got.Category)

	require.NoError(t, yaml.Unmarshal([]byte("category: social_studies\n"), &got))
	assert.Equal(t, CategorySocialStudies, got.Category)

	assert.Error(t, yaml.Unmarshal([]byte("category: cooking\n"), &got))

	data, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"category":"social_studies"}`, string(data))
}

func TestParseEventType(t *testing.T) {
	for _, et := range EventTypes {
		got, err := ParseEventType(string(et))
		require.NoError(t, err)
		assert.Equal(t, et, got)
	}

	_, err := ParseEventType("party")
	assert.Error(t, err)
}

func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name       string
		user       User
		wantFields []string
	}{
		{
			name: "valid user",
			user: User{Name: "Demo", Email: "demo@example.com", Grade: 2},
		},
		{
			name:       "blank name",
			user:       User{Name: "  ", Email: "demo@example.com", Grade: 1},
			wantFields: []string{"name"},
		},
		{
			name:       "email without at sign",
			user:       User{Name: "Demo", Email: "demo.example.com", Grade: 1},
			wantFields: []string{"email"},
		},
		{
			name:       "grade out of range",
			user:       User{Name: "Demo", Email: "demo@example.com", Grade: 4},
			wantFields: []string{"grade"},
		},
		{
			name:       "grade zero",
			user:       User{Name: "Demo", Email: "demo@example.com"},
			wantFields: []string{"grade"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			var fields []string
			for _, f := range verr.Fields {
				fields = append(fields, f.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestUser_GradeLabel(t *testing.T) {
	assert.Equal(t, "1st year", User{Grade: 1}.GradeLabel())
	assert.Equal(t, "3rd year", User{Grade: 3}.GradeLabel())
	assert.Equal(t, "unknown", User{Grade: 9}.GradeLabel())
}

func TestStudySession_Validate(t *testing.T) {
	tests := []struct {
		name    string
		session StudySession
		wantErr bool
	}{
		{
			name:    "valid without satisfaction",
			session: StudySession{SubjectID: 1, DurationMinutes: 30},
		},
		{
			name:    "valid with satisfaction",
			session: StudySession{SubjectID: 1, DurationMinutes: 30, SatisfactionScore: intPtr(5)},
		},
		{
			name:    "zero duration",
			session: StudySession{SubjectID: 1},
			wantErr: true,
		},
		{
			name:    "satisfaction above range",
			session: StudySession{SubjectID: 1, DurationMinutes: 30, SatisfactionScore: intPtr(6)},
			wantErr: true,
		},
		{
			name:    "satisfaction below range",
			session: StudySession{SubjectID: 1, DurationMinutes: 30, SatisfactionScore: intPtr(0)},
			wantErr: true,
		},
		{
			name:    "missing subject",
			session: StudySession{DurationMinutes: 30},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.session.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScheduleEntry_Validate(t *testing.T) {
	at := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	assert.NoError(t, ScheduleEntry{Title: "Midterm", ScheduledAt: at, EventType: EventTypeTest}.Validate())

	err := ScheduleEntry{Title: "Midterm", ScheduledAt: at, EventType: "party"}.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "event_type", verr.Fields[0].Field)
	assert.Contains(t, verr.Fields[0].Message, "mock_exam")
}

func TestQuiz_Check(t *testing.T) {
	q := Quiz{CorrectAnswer: "x = 2"}
	assert.True(t, q.Check(" x = 2 "))
	assert.False(t, q.Check("x = 3"))
}

func TestQuizOptions_ScanValue(t *testing.T) {
	var o QuizOptions
	require.NoError(t, o.Scan(`["a","b"]`))
	assert.Equal(t, QuizOptions{"a", "b"}, o)

	v, err := o.Value()
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, v)

	require.NoError(t, o.Scan(nil))
	assert.Nil(t, o)

	v, err = o.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	assert.Error(t, o.Scan("not json"))
}
