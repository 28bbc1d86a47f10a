package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-hub/internal/domain/account"
	"github.com/BruksfildServices01/barber-hub/internal/domain/tenant"
	"github.com/BruksfildServices01/barber-hub/internal/httperr"
	"github.com/BruksfildServices01/barber-hub/internal/httpresp"
)

type MeHandler struct {
	accounts account.Repository
	shops    tenant.Repository
}

func NewMeHandler(accounts account.Repository, shops tenant.Repository) *MeHandler {
	return &MeHandler{accounts: accounts, shops: shops}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := h.accounts.GetUser(ctx, userIDFrom(c))
	if err != nil {
		httperr.Internal(c, "user_not_found", "Erro ao carregar usuário.")
		return
	}

	roles, err := h.accounts.ListRoles(ctx, user.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_roles", "Erro ao carregar permissões.")
		return
	}

	shop, err := h.shops.GetByID(ctx, barbershopIDFrom(c))
	if err != nil {
		httperr.Internal(c, "barbershop_load_failed", "Erro ao carregar barbearia.")
		return
	}

	httpresp.OK(c, gin.H{
		"user":                user,
		"roles":               roles,
		"barbershop":          shop,
		"professionals_label": tenant.ProfessionalsLabel(shop.BusinessType),
	})
}
