package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/parish-tech/steeple/internal/db"
	"github.com/parish-tech/steeple/internal/http/api"
	"github.com/parish-tech/steeple/internal/http/api/admin/packets"
	"github.com/parish-tech/steeple/internal/model"
	"github.com/parish-tech/steeple/internal/newsletter"
	"github.com/parish-tech/steeple/internal/schedule"
)

type ScheduleController struct {
	store      db.Store
	dispatcher *newsletter.Dispatcher
}

func newScheduleController(store db.Store, dispatcher *newsletter.Dispatcher) *ScheduleController {
	return &ScheduleController{store: store, dispatcher: dispatcher}
}

// ScheduleModule mounts all authenticated /newsletter-schedules endpoints.
// Unlike the other modules, schedule responses are bare JSON without the
// data envelope; consumers depend on that shape.
func ScheduleModule(store db.Store, dispatcher *newsletter.Dispatcher) api.Module {
	ctl := newScheduleController(store, dispatcher)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/newsletter-schedules", ctl.listSchedules)
		c.GET("/newsletter-schedules/:id", ctl.getSchedule)
		c.POST("/newsletter-schedules", ctl.createSchedule)
		c.PUT("/newsletter-schedules/:id", ctl.updateSchedule)
		c.DELETE("/newsletter-schedules/:id", ctl.deleteSchedule)
		c.POST("/newsletter-schedules/:id/run-now", ctl.runNow)
	})
}

func (s *ScheduleController) listSchedules(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	list, err := s.store.ListSchedules()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list schedules"}
	}

	response := make([]packets.ScheduleResponse, 0, len(list))
	for _, sc := range list {
		response = append(response, scheduleResponse(sc))
	}
	return response, nil
}

func (s *ScheduleController) getSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	sc, err := s.store.GetScheduleByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "schedule not found"}
	}
	return scheduleResponse(sc), nil
}

func (s *ScheduleController) createSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	draft, apiErr := s.bindDraft(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	sc, err := s.store.CreateSchedule(draft)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create schedule"}
	}
	return scheduleResponse(sc), nil
}

func (s *ScheduleController) updateSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	draft, apiErr := s.bindDraft(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	sc, err := s.store.UpdateSchedule(id, draft)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "schedule not found"}
	}
	return scheduleResponse(sc), nil
}

func (s *ScheduleController) deleteSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	if _, err := s.store.GetScheduleByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "schedule not found"}
	}
	if err := s.store.DeleteSchedule(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete schedule"}
	}
	return gin.H{"message": "deleted"}, nil
}

func (s *ScheduleController) runNow(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	if err := s.dispatcher.RunNow(id); err != nil {
		log.Error().Err(err).Int("schedule_id", id).Msg("run-now failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not run schedule"}
	}
	return gin.H{"message": "dispatched"}, nil
}

// bindDraft resolves guided vs advanced mode: an explicit cron expression
// wins; otherwise the builder state is compiled. An empty final expression
// is the one precondition enforced before anything is persisted.
func (s *ScheduleController) bindDraft(ctx *gin.Context) (db.ScheduleDraft, *api.APIError) {
	var request packets.SchedulePayload
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return db.ScheduleDraft{}, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	expr := request.CronExpression
	if expr == "" && request.Builder != nil {
		expr = builderFromPayload(*request.Builder).Compile()
	}
	if expr == "" {
		return db.ScheduleDraft{}, &api.APIError{Code: http.StatusBadRequest, Message: "cron expression is required"}
	}

	timezone := request.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	draft := db.ScheduleDraft{
		Title:             request.Title,
		Description:       request.Description,
		CronExpression:    expr,
		Timezone:          timezone,
		TargetBulletinIDs: request.TargetBulletinIDs,
		SendToAll:         request.SendToAll,
		SubscriberIDs:     request.SubscriberIDs,
		Enabled:           request.Enabled,
	}

	if draft.Enabled {
		if next, ok, err := schedule.NextRun(expr, timezone, time.Now()); err == nil && ok {
			draft.NextRunAt = &next
		}
	}
	return draft, nil
}

func builderFromPayload(p packets.BuilderPayload) schedule.Builder {
	return schedule.Builder{
		Frequency:  schedule.Frequency(p.Frequency),
		Time:       p.Time,
		DateOnce:   p.DateOnce,
		Weekdays:   p.Weekdays,
		DayOfMonth: p.DayOfMonth,
	}
}

func scheduleResponse(sc model.NewsletterSchedule) packets.ScheduleResponse {
	resp := packets.ScheduleResponse{
		ID:                sc.ID,
		Title:             sc.Title,
		Description:       sc.Description,
		CronExpression:    sc.CronExpression,
		Timezone:          sc.Timezone,
		TargetBulletinIDs: []int64(sc.TargetBulletinIDs),
		SendToAll:         sc.SendToAll,
		SubscriberIDs:     []int64(sc.SubscriberIDs),
		Enabled:           sc.Enabled,
		CreatedAt:         sc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         sc.UpdatedAt.Format(time.RFC3339),
	}

	// expressions produced by the builder can be parsed back for guided
	// editing; anything else opens in raw-expression mode
	if b, err := schedule.Parse(sc.CronExpression); err == nil {
		resp.Builder = &packets.BuilderPayload{
			Frequency:  string(b.Frequency),
			Time:       b.Time,
			DateOnce:   b.DateOnce,
			Weekdays:   b.Weekdays,
			DayOfMonth: b.DayOfMonth,
		}
	}

	if sc.LastRunAt != nil {
		v := sc.LastRunAt.Format(time.RFC3339)
		resp.LastRunAt = &v
	}
	if sc.NextRunAt != nil {
		v := sc.NextRunAt.Format(time.RFC3339)
		resp.NextRunAt = &v
	}
	return resp
}
