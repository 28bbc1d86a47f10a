package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-hub/internal/httperr"
	"github.com/BruksfildServices01/barber-hub/internal/httpresp"
	"github.com/BruksfildServices01/barber-hub/internal/usecase/auth"
)

type AuthHandler struct {
	register    *auth.Register
	login       *auth.Login
	forgot      *auth.ForgotPassword
	checkReset  *auth.CheckResetToken
	resetPasswd *auth.ResetPassword
}

func NewAuthHandler(
	register *auth.Register,
	login *auth.Login,
	forgot *auth.ForgotPassword,
	checkReset *auth.CheckResetToken,
	resetPasswd *auth.ResetPassword,
) *AuthHandler {
	return &AuthHandler{
		register:    register,
		login:       login,
		forgot:      forgot,
		checkReset:  checkReset,
		resetPasswd: resetPasswd,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	BarbershopName string `json:"barbershop_name" binding:"required,max=100"`
	BarbershopSlug string `json:"barbershop_slug" binding:"required,max=100"`
	WhatsappNumber string `json:"whatsapp_number" binding:"max=20"`
	BusinessType   string `json:"business_type" binding:"max=30"`
	Timezone       string `json:"timezone"`

	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest leaves emptiness checks to the use case so the
// caller gets missing_fields instead of a generic validation error.
type ResetPasswordRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.register.Execute(c.Request.Context(), auth.RegisterInput{
		BarbershopName: req.BarbershopName,
		BarbershopSlug: req.BarbershopSlug,
		WhatsappNumber: req.WhatsappNumber,
		BusinessType:   req.BusinessType,
		Timezone:       req.Timezone,
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
	})
	if err != nil {
		httperr.Respond(c, err, "failed_to_register", "Erro ao criar conta.")
		return
	}

	httpresp.Created(c, s)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err, "failed_to_login", "Erro ao entrar.")
		return
	}

	httpresp.OK(c, s)
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.forgot.Execute(c.Request.Context(), req.Email); err != nil {
		httperr.Respond(c, err, "failed_to_request_reset", "Erro ao solicitar recuperação de senha.")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Se o e-mail estiver cadastrado, você receberá um link de recuperação.",
	})
}

func (h *AuthHandler) CheckResetToken(c *gin.Context) {
	s := h.checkReset.Execute(c.Request.Context(), c.Param("token"))

	status := http.StatusOK
	if s.State == auth.StateError {
		status = http.StatusInternalServerError
	}
	c.JSON(status, s)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.resetPasswd.Execute(c.Request.Context(), auth.ResetPasswordInput{
		Token:           req.Token,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	}); err != nil {
		httperr.Respond(c, err, "failed_to_reset_password", "Erro ao redefinir a senha.")
		return
	}

	httpresp.OK(c, gin.H{"message": "Senha redefinida com sucesso. Entre novamente."})
}
