package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/at-ishikawa/studytracker/internal/eventstore"
	"github.com/at-ishikawa/studytracker/internal/goals"
	"github.com/at-ishikawa/studytracker/internal/report"
	"github.com/at-ishikawa/studytracker/internal/study"
)

// upcomingDays is the default range of the schedule listing.
const upcomingDays = 30

type metricsAPI struct {
	store     eventstore.Store
	recorder  eventstore.Recorder
	generator *report.Generator
	tracker   *goals.Tracker
}

func (api *metricsAPI) register(g *echo.Group) {
	g.GET("/subjects", api.subjects)

	ug := g.Group("/users/:id")
	ug.GET("/reports/:period", api.report)
	ug.GET("/analysis", api.analysis)
	ug.GET("/subjects/:subjectID", api.subjectDetail)
	ug.GET("/overview", api.overview)
	ug.GET("/profile", api.profile)

	ug.GET("/goals", api.getGoals)
	ug.PUT("/goals", api.putGoals)
	ug.GET("/goals/progress", api.goalProgress)

	ug.POST("/sessions", api.recordSession)
	ug.POST("/quiz-results", api.recordQuizResult)

	ug.GET("/schedules", api.listSchedules)
	ug.POST("/schedules", api.addSchedule)
	ug.PATCH("/schedules/:sid", api.updateSchedule)
	ug.DELETE("/schedules/:sid", api.deleteSchedule)
}

func pathID(ctx echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a positive integer")
	}
	return id, nil
}

// queryDate parses a YYYY-MM-DD query parameter as midnight in loc.
func queryDate(ctx echo.Context, name string, loc *time.Location) (time.Time, bool, error) {
	value := ctx.QueryParam(name)
	if value == "" {
		return time.Time{}, false, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, value, loc)
	if err != nil {
		return time.Time{}, false, badRequest(name+" must be a date such as 2025-06-02", err)
	}
	return t, true, nil
}

func (api *metricsAPI) subjects(ctx echo.Context) error {
	subjects, err := api.store.Subjects(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, subjects)
}

// report serves week, month and semester reports. The custom period
// takes from and to query dates; to is inclusive.
func (api *metricsAPI) report(ctx echo.Context) error {
	userID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	var period report.Period
	if ctx.Param("period") == string(report.PeriodCustom) {
		loc := api.generator.Location()
		from, okFrom, err := queryDate(ctx, "from", loc)
		if err != nil {
			return err
		}
		to, okTo, err := queryDate(ctx, "to", loc)
		if err != nil {
			return err
		}
		if !okFrom || !okTo {
			return echo.NewHTTPError(http.StatusBadRequest, "custom reports need both from and to")
		}
		period = report.Custom(from, to.AddDate(0, 0, 1))
	} else {
		period, err = report.ParsePeriod(ctx.Param("period"))
		if err != nil {
			return err
		}
	}

	r, err := api.generator.Generate(ctx.Request().Context(), userID, period)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, r)
}

func (api *metricsAPI) analysis(ctx echo.Context) error {
	userID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	window, err := report.ParseAnalysisWindow(ctx.QueryParam("window"))
	if err != nil {
		return err
	}

	a, err := api.generator.Analyze(ctx.Request().Context(), userID, window)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *metricsAPI) subjectDetail(ctx echo.Context) error {
	userID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	subjectID, err := pathID(ctx, "subjectID")
	if err != nil {
		return err
	}

	detail, err := api.generator.SubjectDetail(ctx.Request().Context(), userID, subjectID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, detail)
}

func (api *metricsAPI) overview(ctx echo.Context) error {
	userID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	o, err := api.generator.Overview(ctx.Request().Context(), userID, api.tracker.Goals(userID))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, o)
}

func (api *metricsAPI) profile(ctx echo.Context) error {
	userID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	l, err := api.generator.Lifetime(ctx.Request().Context(), userID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, l)
}

func (api *metricsAPI) getGoals(ctx echo.Context) error {
	userID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.tracker.Goals(userID))
}

func (api *metricsAPI) putGoals(ctx echo.Context) error {
	userID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	var g goals.Goals
	if err := ctx.Bind(&g); err != nil {
		return err
	}
	if err := api.tracker.SetGoals(userID, g); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, g)
}

func (api *metricsAPI) goalProgress(ctx echo.Context) error {
	userID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	a, err := api.tracker.Attainment(ctx.Request().Context(), userID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, a)
}

type createdResponse struct {
	ID int64 `json:"id"`
}

func (api *metricsAPI) recordSession(ctx echo.Context) error {
	if api.recorder == nil {
		return errReadOnly
	}
	userID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	var s study.StudySession
	if err := ctx.Bind(&s); err != nil {
		return err
	}
	s.UserID = userID

	id, err := api.recorder.RecordStudySession(ctx.Request().Context(), s)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, createdResponse{ID: id})
}

func (api *metricsAPI) recordQuizResult(ctx echo.Context) error {
	if api.recorder == nil {
		return errReadOnly
	}
	userID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	var r study.QuizResult
	if err := ctx.Bind(&r); err != nil {
		return err
	}
	r.UserID = userID

	graded, err := api.recorder.RecordQuizAnswer(ctx.Request().Context(), r)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, graded)
}

// listSchedules returns entries between from and to (inclusive dates),
// defaulting to the next 30 days. type narrows to one event type.
func (api *metricsAPI) listSchedules(ctx echo.Context) error {
	userID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	loc := api.generator.Location()
	today := goals.DayWindow(api.generator.Now()).Start
	from, ok, err := queryDate(ctx, "from", loc)
	if err != nil {
		return err
	}
	if !ok {
		from = today
	}
	to, ok, err := queryDate(ctx, "to", loc)
	if err != nil {
		return err
	}
	if !ok {
		to = from.AddDate(0, 0, upcomingDays-1)
	}
	interval, err := eventstore.NewInterval(from, to.AddDate(0, 0, 1))
	if err != nil {
		return badRequest("from must not be after to", err)
	}

	q := eventstore.ScheduleQuery{Query: eventstore.Query{UserID: userID, Interval: interval}}
	if value := ctx.QueryParam("type"); value != "" {
		eventType, err := study.ParseEventType(value)
		if err != nil {
			return badRequest(err.Error(), err)
		}
		q.EventType = &eventType
	}

	entries, err := api.store.ScheduleEntries(ctx.Request().Context(), q)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *metricsAPI) addSchedule(ctx echo.Context) error {
	if api.recorder == nil {
		return errReadOnly
	}
	userID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	var e study.ScheduleEntry
	if err := ctx.Bind(&e); err != nil {
		return err
	}
	e.UserID = userID

	id, err := api.recorder.AddScheduleEntry(ctx.Request().Context(), e)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, createdResponse{ID: id})
}

type scheduleUpdate struct {
	IsCompleted *bool `json:"is_completed"`
}

func (api *metricsAPI) updateSchedule(ctx echo.Context) error {
	if api.recorder == nil {
		return errReadOnly
	}
	userID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	entryID, err := pathID(ctx, "sid")
	if err != nil {
		return err
	}

	var update scheduleUpdate
	if err := ctx.Bind(&update); err != nil {
		return err
	}
	if update.IsCompleted == nil {
		return badRequest("is_completed is required", errors.New("missing is_completed"))
	}

	if err := api.recorder.SetScheduleCompleted(ctx.Request().Context(), userID, entryID, *update.IsCompleted); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *metricsAPI) deleteSchedule(ctx echo.Context) error {
	if api.recorder == nil {
		return errReadOnly
	}
	userID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	entryID, err := pathID(ctx, "sid")
	if err != nil {
		return err
	}

	if err := api.recorder.DeleteScheduleEntry(ctx.Request().Context(), userID, entryID); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
