package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/autoimport-crm/internal/audit"
	"github.com/BruksfildServices01/autoimport-crm/internal/domain/submission"
	"github.com/BruksfildServices01/autoimport-crm/internal/httperr"
	"github.com/BruksfildServices01/autoimport-crm/internal/middleware"
)

type businessMapping struct {
	status  int
	message string
}

// businessErrors traduz códigos de BusinessError para HTTP.
var businessErrors = map[string]businessMapping{
	"submission_not_found":     {http.StatusNotFound, "Submission not found"},
	"status_not_found":         {http.StatusNotFound, "Status not found"},
	"tag_not_found":            {http.StatusNotFound, "Tag not found"},
	"user_not_found":           {http.StatusNotFound, "Assigned user not found"},
	"invalid_status":           {http.StatusBadRequest, "Open status is not configured"},
	"invalid_credentials":      {http.StatusUnauthorized, "Invalid email or password"},
	"invalid_email":            {http.StatusBadRequest, "Email address is not valid"},
	"weak_password":            {http.StatusBadRequest, "Password must have at least 6 characters"},
	"email_already_registered": {http.StatusConflict, "Email is already registered"},
	"account_not_found":        {http.StatusNotFound, "Account not found"},
	"unsupported_image":        {http.StatusBadRequest, "File is not a supported image"},
	"invalid_token":            {http.StatusUnauthorized, "Invalid or expired token"},
	"token_revoked":            {http.StatusUnauthorized, "Session has been logged out"},
}

// writeError responde erros de validação e de negócio com o código próprio;
// o resto vira 500 com a mensagem genérica e o erro vai só para o log.
func writeError(c *gin.Context, log *zap.Logger, err error, code, message string) {
	var ve submission.ValidationError
	if errors.As(err, &ve) {
		httperr.FieldError(c, "validation_error", ve.Field, ve.Message)
		return
	}

	if bc, ok := httperr.CodeOf(err); ok {
		if m, ok := businessErrors[bc]; ok {
			httperr.Write(c, m.status, bc, m.message)
			return
		}
	}

	log.Error(message,
		zap.String("error_code", code),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	httperr.Internal(c, code, message)
}

func invalidRequest(c *gin.Context, err error) {
	httperr.BadRequest(c, "invalid_request", err.Error())
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// actorEvent preenche no evento o usuário autenticado e os dados da requisição.
func actorEvent(c *gin.Context, ev audit.Event) audit.Event {
	if id := middleware.UserID(c); id != "" {
		ev.UserID = &id
	}
	ev.IPAddress = c.ClientIP()
	ev.UserAgent = c.Request.UserAgent()
	return ev
}
