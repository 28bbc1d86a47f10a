package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-hub/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-hub/internal/httperr"
	"github.com/BruksfildServices01/barber-hub/internal/httpresp"
	ucSchedule "github.com/BruksfildServices01/barber-hub/internal/usecase/schedule"
)

type ScheduleHandler struct {
	list *ucSchedule.GetSchedules
	save *ucSchedule.SaveSchedule
}

func NewScheduleHandler(list *ucSchedule.GetSchedules, save *ucSchedule.SaveSchedule) *ScheduleHandler {
	return &ScheduleHandler{list: list, save: save}
}

type SaveScheduleRequest struct {
	Days []domain.Day `json:"days" binding:"required,dive"`
}

func (h *ScheduleHandler) List(c *gin.Context) {
	weeks, err := h.list.Execute(c.Request.Context(), barbershopIDFrom(c))
	if err != nil {
		httperr.Respond(c, err, "failed_to_list_schedules", "Erro ao carregar horários.")
		return
	}

	httpresp.List(c, weeks)
}

// PUT /api/me/schedules/:barberId
func (h *ScheduleHandler) Save(c *gin.Context) {
	barberID, ok := uintParam(c, "barberId", "invalid_barber_id", "ID de profissional inválido.")
	if !ok {
		return
	}

	var req SaveScheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	week, err := h.save.Execute(c.Request.Context(), ucSchedule.SaveScheduleInput{
		BarbershopID: barbershopIDFrom(c),
		UserID:       userIDFrom(c),
		BarberID:     barberID,
		Days:         req.Days,
	})
	if err != nil {
		httperr.Respond(c, err, "failed_to_save_schedule", "Erro ao salvar horários.")
		return
	}

	httpresp.OK(c, week)
}
