package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-hub/internal/domain/barber"
	"github.com/BruksfildServices01/barber-hub/internal/domain/tenant"
	"github.com/BruksfildServices01/barber-hub/internal/httperr"
	"github.com/BruksfildServices01/barber-hub/internal/httpresp"
	"github.com/BruksfildServices01/barber-hub/internal/models"
	"github.com/BruksfildServices01/barber-hub/internal/theme"
	tenantuc "github.com/BruksfildServices01/barber-hub/internal/usecase/tenant"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	resolver *tenantuc.Resolver
	barbers  barber.Repository
}

func NewPublicHandler(resolver *tenantuc.Resolver, barbers barber.Repository) *PublicHandler {
	return &PublicHandler{resolver: resolver, barbers: barbers}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type ThemeResponse struct {
	Colors    theme.Colors      `json:"colors"`
	Variables map[string]string `json:"variables"`
	// Fallback is true when the stored colors could not be parsed and the
	// default palette was served instead.
	Fallback bool `json:"fallback"`
}

type PublicBarbershopResponse struct {
	Barbershop         *models.Barbershop `json:"barbershop"`
	ProfessionalsLabel string             `json:"professionals_label"`
	Theme              ThemeResponse      `json:"theme"`
}

type PublicBarberResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Specialty *string `json:"specialty"`
}

func themeOf(shop *models.Barbershop) ThemeResponse {
	palette, ok := tenant.Palette(shop)
	colors := tenant.Colors(shop)
	if !ok {
		colors = theme.DefaultColors
	}
	return ThemeResponse{
		Colors:    colors,
		Variables: palette.Map(),
		Fallback:  !ok,
	}
}

// resolve answers the error itself and reports whether the handler may go on.
func (h *PublicHandler) resolve(c *gin.Context) (*models.Barbershop, bool) {
	shop, err := h.resolver.ResolveBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.Respond(c, err, "barbershop_load_failed", "Erro ao carregar barbearia.")
		return nil, false
	}
	return shop, true
}

////////////////////////////////////////////////////////
// ENDPOINTS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListBarbershops(c *gin.Context) {
	list, err := h.resolver.ListActive(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_barbershops", "Erro ao listar barbearias.")
		return
	}

	httpresp.List(c, list)
}

// GET /api/public/barbershops/:slug
func (h *PublicHandler) GetBarbershop(c *gin.Context) {
	shop, ok := h.resolve(c)
	if !ok {
		return
	}

	httpresp.OK(c, PublicBarbershopResponse{
		Barbershop:         shop,
		ProfessionalsLabel: tenant.ProfessionalsLabel(shop.BusinessType),
		Theme:              themeOf(shop),
	})
}

func (h *PublicHandler) Theme(c *gin.Context) {
	shop, ok := h.resolve(c)
	if !ok {
		return
	}

	httpresp.OK(c, themeOf(shop))
}

// GET /api/public/barbershops/:slug/theme.css
func (h *PublicHandler) ThemeCSS(c *gin.Context) {
	shop, ok := h.resolve(c)
	if !ok {
		return
	}

	palette, _ := tenant.Palette(shop)

	c.Header("Cache-Control", "public, max-age=300")
	c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(palette.CSS()))
}

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	shop, ok := h.resolve(c)
	if !ok {
		return
	}

	barbers, err := h.barbers.List(c.Request.Context(), shop.ID, true)
	if err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar profissionais.")
		return
	}

	out := make([]PublicBarberResponse, 0, len(barbers))
	for _, b := range barbers {
		out = append(out, PublicBarberResponse{
			ID:        b.ID,
			Name:      b.Name,
			Specialty: b.Specialty,
		})
	}

	httpresp.List(c, out)
}
