package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-hub/internal/audit"
	"github.com/BruksfildServices01/barber-hub/internal/domain/tenant"
	"github.com/BruksfildServices01/barber-hub/internal/httperr"
	"github.com/BruksfildServices01/barber-hub/internal/httpresp"
	"github.com/BruksfildServices01/barber-hub/internal/infra/storage"
	"github.com/BruksfildServices01/barber-hub/internal/models"
	tenantuc "github.com/BruksfildServices01/barber-hub/internal/usecase/tenant"
)

type BarbershopHandler struct {
	shops    tenant.Repository
	resolver *tenantuc.Resolver
	store    storage.ObjectStore
	audit    audit.Recorder
}

// NewBarbershopHandler accepts a nil store; logo uploads then answer 503.
func NewBarbershopHandler(
	shops tenant.Repository,
	resolver *tenantuc.Resolver,
	store storage.ObjectStore,
	audit audit.Recorder,
) *BarbershopHandler {
	return &BarbershopHandler{
		shops:    shops,
		resolver: resolver,
		store:    store,
		audit:    audit,
	}
}

type UpdateBarbershopRequest struct {
	Name           *string `json:"name" binding:"omitempty,min=2,max=100"`
	WhatsappNumber *string `json:"whatsapp_number" binding:"omitempty,max=20"`

	PrimaryColor    *string `json:"primary_color" binding:"omitempty,len=7,hexcolor"`
	SecondaryColor  *string `json:"secondary_color" binding:"omitempty,len=7,hexcolor"`
	BackgroundColor *string `json:"background_color" binding:"omitempty,len=7,hexcolor"`
	TextColor       *string `json:"text_color" binding:"omitempty,len=7,hexcolor"`

	OpeningTime *string `json:"opening_time" binding:"omitempty,hhmm"`
	ClosingTime *string `json:"closing_time" binding:"omitempty,hhmm"`

	BusinessType *string `json:"business_type" binding:"omitempty,min=2,max=30"`
	Timezone     *string `json:"timezone" binding:"omitempty,iana_tz"`
	Active       *bool   `json:"active"`
}

// fields lists the columns to update. Colors are stored upper-case.
func (r UpdateBarbershopRequest) fields() map[string]any {
	f := map[string]any{}

	if r.Name != nil {
		f["name"] = strings.TrimSpace(*r.Name)
	}
	if r.WhatsappNumber != nil {
		f["whatsapp_number"] = nullable(strings.TrimSpace(*r.WhatsappNumber))
	}

	colors := map[string]*string{
		"primary_color":    r.PrimaryColor,
		"secondary_color":  r.SecondaryColor,
		"background_color": r.BackgroundColor,
		"text_color":       r.TextColor,
	}
	for col, v := range colors {
		if v != nil {
			f[col] = strings.ToUpper(*v)
		}
	}

	if r.OpeningTime != nil {
		f["opening_time"] = nullable(*r.OpeningTime)
	}
	if r.ClosingTime != nil {
		f["closing_time"] = nullable(*r.ClosingTime)
	}
	if r.BusinessType != nil {
		f["business_type"] = strings.TrimSpace(*r.BusinessType)
	}
	if r.Timezone != nil {
		f["timezone"] = *r.Timezone
	}
	if r.Active != nil {
		f["active"] = *r.Active
	}
	return f
}

func (h *BarbershopHandler) GetMeBarbershop(c *gin.Context) {
	shop, err := h.shops.GetByID(c.Request.Context(), barbershopIDFrom(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_barbershop", "Erro ao buscar dados da barbearia.")
		return
	}

	httpresp.OK(c, shop)
}

func (h *BarbershopHandler) UpdateMeBarbershop(c *gin.Context) {
	ctx := c.Request.Context()
	barbershopID := barbershopIDFrom(c)

	var req UpdateBarbershopRequest
	if !bindJSON(c, &req) {
		return
	}

	current, err := h.shops.GetByID(ctx, barbershopID)
	if err != nil {
		httperr.Internal(c, "failed_to_get_barbershop", "Erro ao buscar dados da barbearia.")
		return
	}

	fields := req.fields()
	if !openingHoursValid(current, fields) {
		httperr.BadRequest(c, "invalid_opening_hours", "O horário de abertura deve ser anterior ao de fechamento.")
		return
	}

	shop, err := h.shops.Update(ctx, barbershopID, fields)
	if err != nil {
		httperr.Internal(c, "failed_to_update_barbershop", "Erro ao salvar as configurações da barbearia.")
		return
	}

	h.resolver.Invalidate(ctx, shop.Slug)

	userID := userIDFrom(c)
	changed := make([]string, 0, len(fields))
	for k := range fields {
		changed = append(changed, k)
	}
	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &userID,
		Action:       audit.ActionBarbershopUpdated,
		Entity:       "barbershop",
		EntityID:     &shop.ID,
		Metadata:     map[string]any{"fields": changed},
	})

	httpresp.OK(c, shop)
}

func (h *BarbershopHandler) UploadLogo(c *gin.Context) {
	ctx := c.Request.Context()
	barbershopID := barbershopIDFrom(c)

	if h.store == nil {
		httperr.Respond(c, httperr.ErrBusiness("storage_disabled"), "", "")
		return
	}

	file, err := c.FormFile("logo")
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Envie a imagem no campo \"logo\".")
		return
	}
	if file.Size > storage.MaxLogoBytes {
		httperr.Respond(c, httperr.ErrBusiness("image_too_large"), "", "")
		return
	}

	f, err := file.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_upload", "Erro ao ler o arquivo enviado.")
		return
	}
	defer f.Close()

	webp, err := storage.NormalizeLogo(f)
	if err != nil {
		httperr.Respond(c, err, "failed_to_process_image", "Erro ao processar a imagem.")
		return
	}

	url, err := h.store.Put(ctx, storage.LogoKey(barbershopID), "image/webp", webp)
	if err != nil {
		httperr.Respond(c, err, "failed_to_store_logo", "Erro ao salvar o logo.")
		return
	}

	shop, err := h.shops.Update(ctx, barbershopID, map[string]any{"logo_url": url})
	if err != nil {
		httperr.Internal(c, "failed_to_update_barbershop", "Erro ao salvar as configurações da barbearia.")
		return
	}

	h.resolver.Invalidate(ctx, shop.Slug)

	userID := userIDFrom(c)
	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &userID,
		Action:       audit.ActionLogoUpdated,
		Entity:       "barbershop",
		EntityID:     &shop.ID,
		Metadata:     map[string]string{"logo_url": url},
	})

	httpresp.OK(c, shop)
}

// openingHoursValid checks the resulting opening window when both ends
// are set.
func openingHoursValid(current *models.Barbershop, fields map[string]any) bool {
	open := pick(fields, "opening_time", current.OpeningTime)
	closing := pick(fields, "closing_time", current.ClosingTime)
	if open == nil || closing == nil {
		return true
	}
	return *open < *closing
}

func pick(fields map[string]any, key string, current *string) *string {
	if v, ok := fields[key]; ok {
		return v.(*string)
	}
	return current
}
