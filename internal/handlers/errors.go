package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/httperr"
)

type businessMapping struct {
	status  int
	message string
}

var businessErrors = map[string]businessMapping{
	"invalid_request":       {http.StatusBadRequest, "Dados inválidos."},
	"invalid_date":          {http.StatusBadRequest, "Data inválida."},
	"invalid_month":         {http.StatusBadRequest, "Mês inválido."},
	"invalid_date_or_time":  {http.StatusBadRequest, "Data ou hora inválida."},
	"too_soon":              {http.StatusBadRequest, "Horário no passado ou sem a antecedência mínima."},
	"barber_not_found":      {http.StatusNotFound, "Barbeiro não encontrado."},
	"service_not_found":     {http.StatusNotFound, "Serviço não encontrado."},
	"appointment_not_found": {http.StatusNotFound, "Agendamento não encontrado."},
	"slot_unavailable":      {http.StatusConflict, "Horário indisponível."},
	"invalid_state":         {http.StatusConflict, "Transição de status inválida."},
}

// writeError traduz o erro do caso de uso para a resposta HTTP.
func writeError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		_ = c.Error(err)
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	m, known := businessErrors[code]
	if !known {
		httperr.BadRequest(c, code, code)
		return
	}

	httperr.Write(c, m.status, code, m.message)
}
