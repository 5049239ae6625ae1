package helper

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/model/response"
)

func BindJSON[T any](c *gin.Context) (T, error) {
	var params T

	if err := c.ShouldBindJSON(&params); err != nil {
		return params, err
	}

	return params, nil
}

func SendSuccess(c *gin.Context, statusCode int, data any, message ...string) {
	resp := response.SuccessResponse{
		Data: data,
	}

	if len(message) > 0 && message[0] != "" {
		resp.Message = message[0]
	}

	c.JSON(statusCode, resp)
}

// SendDomainError maps a typed *domain.Error onto its HTTP status; anything
// else becomes an opaque 500.
func SendDomainError(c *gin.Context, err error) {
	domainErr, ok := domain.AsError(err)

	if !ok {
		SendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", nil)
		return
	}

	fields := make([]response.ValidationError, 0, len(domainErr.Fields))

	for _, field := range domainErr.Fields {
		fields = append(fields, response.ValidationError{
			Field:   field.Field,
			Message: field.Message,
		})
	}

	SendError(c, domainErr.Status, domainErr.Code, domainErr.Message, fields)
}

func SendError(c *gin.Context, statusCode int, code string, message string, errors []response.ValidationError) {
	c.JSON(statusCode, response.ErrorResponse{
		Error: response.ResponseError{
			Code:    code,
			Message: message,
			Errors:  errors,
		},
	})
}

func SendUnauthorizedError(c *gin.Context, message string) {
	SendError(c, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

func SendBadRequestError(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, "BAD_REQUEST", message, nil)
}
