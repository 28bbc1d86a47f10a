package httperr

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Mapping describes how a business code is exposed over HTTP.
type Mapping struct {
	Status  int
	Message string
}

// Mappings is consulted by Respond; handlers register their codes here.
var Mappings = map[string]Mapping{
	"invalid_request":        {http.StatusBadRequest, "Dados inválidos na requisição."},
	"invalid_date":           {http.StatusBadRequest, "Data inválida."},
	"barbershop_not_found":   {http.StatusNotFound, "Barbearia não encontrada."},
	"barbershop_load_failed": {http.StatusInternalServerError, "Erro ao carregar barbearia."},
	"barber_not_found":       {http.StatusNotFound, "Profissional não encontrado."},
	"barber_inactive":        {http.StatusBadRequest, "Profissional inativo."},
	"invalid_status":         {http.StatusBadRequest, "Status de presença inválido."},
	"barber_on_time_off":     {http.StatusConflict, "O profissional está de folga nesta data."},
	"time_off_exists":        {http.StatusConflict, "Já existe uma folga marcada para esta data."},
	"time_off_not_found":     {http.StatusNotFound, "Folga não encontrada."},
	"invalid_schedule":       {http.StatusBadRequest, "Horário inválido."},
	"invalid_slug":           {http.StatusBadRequest, "Use apenas letras minúsculas, números e hífens no endereço."},
	"slug_already_exists":    {http.StatusConflict, "Este endereço já está em uso."},
	"email_already_exists":   {http.StatusConflict, "Este e-mail já está cadastrado."},
	"invalid_email_domain":   {http.StatusBadRequest, "O domínio do e-mail informado não parece ser válido."},
	"invalid_credentials":    {http.StatusUnauthorized, "E-mail ou senha inválidos."},
	"missing_fields":         {http.StatusBadRequest, "Preencha todos os campos."},
	"password_too_short":     {http.StatusBadRequest, "A senha deve ter pelo menos 6 caracteres."},
	"password_mismatch":      {http.StatusBadRequest, "As senhas não coincidem."},
	"invalid_reset_token":    {http.StatusBadRequest, "O link de recuperação é inválido ou expirou."},
	"invalid_timezone":       {http.StatusBadRequest, "Fuso horário inválido."},
	"invalid_image":          {http.StatusBadRequest, "Imagem inválida."},
	"image_too_large":        {http.StatusRequestEntityTooLarge, "Imagem muito grande."},
	"storage_disabled":       {http.StatusServiceUnavailable, "Armazenamento de arquivos indisponível."},
}

// Respond writes err as JSON: registered business codes use their mapping,
// anything else is logged and reported as fallbackCode.
func Respond(c *gin.Context, err error, fallbackCode, fallbackMessage string) {
	if code, ok := BusinessCode(err); ok {
		if m, found := Mappings[code]; found {
			Write(c, m.Status, code, m.Message)
			return
		}
		BadRequest(c, code, code)
		return
	}

	slog.ErrorContext(c.Request.Context(), "request failed",
		"path", c.FullPath(),
		"error_code", fallbackCode,
		"error", err,
	)
	Internal(c, fallbackCode, fallbackMessage)
}
