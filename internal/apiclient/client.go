// Package apiclient reads reports from a running studytracker server.
package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/at-ishikawa/studytracker/internal/eventstore"
	"github.com/at-ishikawa/studytracker/internal/goals"
	"github.com/at-ishikawa/studytracker/internal/report"
)

// DefaultTimeout bounds a single request.
const DefaultTimeout = 30 * time.Second

// ErrBadRequest is wrapped by every 400 response.
var ErrBadRequest = errors.New("request rejected by the server")

// Error is a non-2xx response. It unwraps to the sentinels matching the
// status and the error code so callers can use errors.Is like they would
// against a local store.
type Error struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server responded %d: %s", e.StatusCode, e.Message)
}

func (e *Error) Unwrap() []error {
	var errs []error
	switch e.StatusCode {
	case http.StatusBadRequest:
		errs = append(errs, ErrBadRequest)
	case http.StatusNotFound:
		errs = append(errs, eventstore.ErrNotFound)
	case http.StatusConflict:
		errs = append(errs, eventstore.ErrConflict)
	case http.StatusServiceUnavailable:
		errs = append(errs, eventstore.ErrStorageUnavailable)
	}
	switch e.Code {
	case "invalid_configuration":
		errs = append(errs, goals.ErrInvalidConfiguration)
	case "invalid_period":
		errs = append(errs, report.ErrInvalidPeriod)
	}
	return errs
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type Client struct {
	httpClient *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "application/json")

	return &Client{httpClient: client}
}

func (client *Client) get(ctx context.Context, path string, userID int64, query map[string]string, result interface{}) error {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(userID, 10)).
		SetQueryParams(query).
		SetResult(result).
		SetError(&errorBody{}).
		Get(path)
	if err != nil {
		return fmt.Errorf("httpClient.Get(%s) > %w: %w", path, eventstore.ErrStorageUnavailable, err)
	}
	if response.IsError() {
		return responseError(response)
	}
	return nil
}

func responseError(response *resty.Response) error {
	apiErr := &Error{StatusCode: response.StatusCode(), Message: response.String()}
	if body, ok := response.Error().(*errorBody); ok {
		if body.Error != "" {
			apiErr.Message = body.Error
		}
		apiErr.Code = body.Code
	}
	return apiErr
}

// Report fetches the report for period. Custom periods are sent as
// inclusive from and to dates.
func (client *Client) Report(ctx context.Context, userID int64, period report.Period) (report.Report, error) {
	query := map[string]string{}
	if period.Kind == report.PeriodCustom {
		query["from"] = period.Start.Format(time.DateOnly)
		query["to"] = period.End.AddDate(0, 0, -1).Format(time.DateOnly)
	}

	var r report.Report
	path := "/v1/users/{id}/reports/" + string(period.Kind)
	if err := client.get(ctx, path, userID, query, &r); err != nil {
		return report.Report{}, err
	}
	return r, nil
}

func (client *Client) Analysis(ctx context.Context, userID int64, window report.AnalysisWindow) (report.Analysis, error) {
	var a report.Analysis
	if err := client.get(ctx, "/v1/users/{id}/analysis", userID, map[string]string{"window": string(window)}, &a); err != nil {
		return report.Analysis{}, err
	}
	return a, nil
}

func (client *Client) SubjectDetail(ctx context.Context, userID, subjectID int64) (report.SubjectDetail, error) {
	var d report.SubjectDetail
	path := "/v1/users/{id}/subjects/" + strconv.FormatInt(subjectID, 10)
	if err := client.get(ctx, path, userID, nil, &d); err != nil {
		return report.SubjectDetail{}, err
	}
	return d, nil
}

func (client *Client) Overview(ctx context.Context, userID int64) (report.Overview, error) {
	var o report.Overview
	if err := client.get(ctx, "/v1/users/{id}/overview", userID, nil, &o); err != nil {
		return report.Overview{}, err
	}
	return o, nil
}

func (client *Client) Lifetime(ctx context.Context, userID int64) (report.Lifetime, error) {
	var l report.Lifetime
	if err := client.get(ctx, "/v1/users/{id}/profile", userID, nil, &l); err != nil {
		return report.Lifetime{}, err
	}
	return l, nil
}

func (client *Client) GoalProgress(ctx context.Context, userID int64) (goals.Attainment, error) {
	var a goals.Attainment
	if err := client.get(ctx, "/v1/users/{id}/goals/progress", userID, nil, &a); err != nil {
		return goals.Attainment{}, err
	}
	return a, nil
}

func (client *Client) Goals(ctx context.Context, userID int64) (goals.Goals, error) {
	var g goals.Goals
	if err := client.get(ctx, "/v1/users/{id}/goals", userID, nil, &g); err != nil {
		return goals.Goals{}, err
	}
	return g, nil
}

// SetGoals replaces the user's goals on the server. Goals live in the
// server process and reset when it restarts.
func (client *Client) SetGoals(ctx context.Context, userID int64, g goals.Goals) (goals.Goals, error) {
	var saved goals.Goals
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(userID, 10)).
		SetBody(g).
		SetResult(&saved).
		SetError(&errorBody{}).
		Put("/v1/users/{id}/goals")
	if err != nil {
		return goals.Goals{}, fmt.Errorf("httpClient.Put(goals) > %w: %w", eventstore.ErrStorageUnavailable, err)
	}
	if response.IsError() {
		return goals.Goals{}, responseError(response)
	}
	return saved, nil
}
