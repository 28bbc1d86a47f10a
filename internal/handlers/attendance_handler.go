package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-hub/internal/httperr"
	"github.com/BruksfildServices01/barber-hub/internal/httpresp"
	ucAttendance "github.com/BruksfildServices01/barber-hub/internal/usecase/attendance"
)

type AttendanceHandler struct {
	board         *ucAttendance.GetBoard
	mark          *ucAttendance.MarkAttendance
	addTimeOff    *ucAttendance.AddTimeOff
	removeTimeOff *ucAttendance.RemoveTimeOff
	listTimeOff   *ucAttendance.ListTimeOff
}

func NewAttendanceHandler(
	board *ucAttendance.GetBoard,
	mark *ucAttendance.MarkAttendance,
	addTimeOff *ucAttendance.AddTimeOff,
	removeTimeOff *ucAttendance.RemoveTimeOff,
	listTimeOff *ucAttendance.ListTimeOff,
) *AttendanceHandler {
	return &AttendanceHandler{
		board:         board,
		mark:          mark,
		addTimeOff:    addTimeOff,
		removeTimeOff: removeTimeOff,
		listTimeOff:   listTimeOff,
	}
}

// ======================================================
// DTOs
// ======================================================

type MarkAttendanceRequest struct {
	Date   string `json:"date" binding:"omitempty,isodate"`
	Status string `json:"status" binding:"required"`
}

type CreateTimeOffRequest struct {
	BarberID uint   `json:"barber_id" binding:"required"`
	Date     string `json:"date" binding:"required,isodate"`
	Reason   string `json:"reason" binding:"max=255"`
}

// ======================================================
// BOARD
// ======================================================

// GET /api/me/attendance?date=YYYY-MM-DD
func (h *AttendanceHandler) Board(c *gin.Context) {
	board, err := h.board.Execute(c.Request.Context(), barbershopIDFrom(c), c.Query("date"))
	if err != nil {
		httperr.Respond(c, err, "failed_to_load_attendance", "Erro ao carregar presenças.")
		return
	}

	httpresp.OK(c, board)
}

// PUT /api/me/attendance/:barberId
func (h *AttendanceHandler) Mark(c *gin.Context) {
	barberID, ok := uintParam(c, "barberId", "invalid_barber_id", "ID de profissional inválido.")
	if !ok {
		return
	}

	var req MarkAttendanceRequest
	if !bindJSON(c, &req) {
		return
	}

	row, err := h.mark.Execute(c.Request.Context(), ucAttendance.MarkAttendanceInput{
		BarbershopID: barbershopIDFrom(c),
		UserID:       userIDFrom(c),
		BarberID:     barberID,
		Date:         req.Date,
		Status:       req.Status,
	})
	if err != nil {
		httperr.Respond(c, err, "failed_to_mark_attendance", "Erro ao registrar presença.")
		return
	}

	httpresp.OK(c, row)
}

// ======================================================
// TIME OFF
// ======================================================

// GET /api/me/time-off?from=YYYY-MM-DD
func (h *AttendanceHandler) ListTimeOff(c *gin.Context) {
	list, err := h.listTimeOff.Execute(c.Request.Context(), barbershopIDFrom(c), c.Query("from"))
	if err != nil {
		httperr.Respond(c, err, "failed_to_list_time_off", "Erro ao listar folgas.")
		return
	}

	httpresp.List(c, list)
}

func (h *AttendanceHandler) CreateTimeOff(c *gin.Context) {
	var req CreateTimeOffRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.addTimeOff.Execute(c.Request.Context(), ucAttendance.AddTimeOffInput{
		BarbershopID: barbershopIDFrom(c),
		UserID:       userIDFrom(c),
		BarberID:     req.BarberID,
		Date:         req.Date,
		Reason:       req.Reason,
	})
	if err != nil {
		httperr.Respond(c, err, "failed_to_create_time_off", "Erro ao registrar folga.")
		return
	}

	httpresp.Created(c, t)
}

func (h *AttendanceHandler) DeleteTimeOff(c *gin.Context) {
	id, ok := uintParam(c, "id", "invalid_time_off_id", "ID de folga inválido.")
	if !ok {
		return
	}

	err := h.removeTimeOff.Execute(c.Request.Context(), barbershopIDFrom(c), userIDFrom(c), id)
	if err != nil {
		httperr.Respond(c, err, "failed_to_remove_time_off", "Erro ao remover folga.")
		return
	}

	httpresp.NoContent(c)
}
