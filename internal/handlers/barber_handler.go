package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-hub/internal/audit"
	"github.com/BruksfildServices01/barber-hub/internal/domain/barber"
	"github.com/BruksfildServices01/barber-hub/internal/httperr"
	"github.com/BruksfildServices01/barber-hub/internal/httpresp"
	"github.com/BruksfildServices01/barber-hub/internal/models"
)

type BarberHandler struct {
	barbers barber.Repository
	audit   audit.Recorder
}

func NewBarberHandler(barbers barber.Repository, audit audit.Recorder) *BarberHandler {
	return &BarberHandler{barbers: barbers, audit: audit}
}

type CreateBarberRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=100"`
	Specialty    string `json:"specialty" binding:"max=100"`
	Active       *bool  `json:"active"`
	HasAppAccess bool   `json:"has_app_access"`
}

type UpdateBarberRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=2,max=100"`
	Specialty    *string `json:"specialty" binding:"omitempty,max=100"`
	Active       *bool   `json:"active"`
	HasAppAccess *bool   `json:"has_app_access"`
}

// GET /api/me/barbers?active=true
func (h *BarberHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	barbers, err := h.barbers.List(c.Request.Context(), barbershopIDFrom(c), activeOnly)
	if err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar profissionais.")
		return
	}

	httpresp.List(c, barbers)
}

func (h *BarberHandler) Create(c *gin.Context) {
	barbershopID := barbershopIDFrom(c)

	var req CreateBarberRequest
	if !bindJSON(c, &req) {
		return
	}

	b := &models.Barber{
		BarbershopID: barbershopID,
		Name:         strings.TrimSpace(req.Name),
		Specialty:    nullable(strings.TrimSpace(req.Specialty)),
		Active:       req.Active == nil || *req.Active,
		HasAppAccess: req.HasAppAccess,
	}

	if err := h.barbers.Create(c.Request.Context(), b); err != nil {
		httperr.Internal(c, "failed_to_create_barber", "Erro ao cadastrar profissional.")
		return
	}

	userID := userIDFrom(c)
	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &userID,
		Action:       audit.ActionBarberCreated,
		Entity:       "barber",
		EntityID:     &b.ID,
		Metadata:     map[string]string{"name": b.Name},
	})

	httpresp.Created(c, b)
}

func (h *BarberHandler) Update(c *gin.Context) {
	barbershopID := barbershopIDFrom(c)

	barberID, ok := uintParam(c, "id", "invalid_barber_id", "ID de profissional inválido.")
	if !ok {
		return
	}

	var req UpdateBarberRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Specialty != nil {
		fields["specialty"] = nullable(strings.TrimSpace(*req.Specialty))
	}
	if req.Active != nil {
		fields["active"] = *req.Active
	}
	if req.HasAppAccess != nil {
		fields["has_app_access"] = *req.HasAppAccess
	}

	b, err := h.barbers.Update(c.Request.Context(), barbershopID, barberID, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Respond(c, httperr.ErrBusiness("barber_not_found"), "", "")
			return
		}
		httperr.Internal(c, "failed_to_update_barber", "Erro ao atualizar profissional.")
		return
	}

	userID := userIDFrom(c)
	changed := make([]string, 0, len(fields))
	for k := range fields {
		changed = append(changed, k)
	}
	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &userID,
		Action:       audit.ActionBarberUpdated,
		Entity:       "barber",
		EntityID:     &b.ID,
		Metadata:     map[string]any{"fields": changed},
	})

	httpresp.OK(c, b)
}
