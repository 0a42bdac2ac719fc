package handlers

import (
	"errors"
	"net/http"

	"github.com/fakenewsverificaton/verificaton-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// fieldMessages traduz "Campo.tag" para a mensagem exibida ao usuário
var fieldMessages = map[string]string{
	"InputType.required": models.MsgInputTypeRequired,
	"InputType.oneof":    models.MsgInputTypeInvalid,
	"Content.required":   models.MsgContentEmpty,
	"Title.required":     models.MsgTitleTooShort,
	"Title.min":          models.MsgTitleTooShort,
	"Title.max":          models.MsgTitleTooLong,
	"Description.max":    models.MsgDescriptionLong,
}

// bindingError converte um erro de binding em APIError
func bindingError(err error) *models.APIError {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return models.NewAPIError(models.ErrKindTooLarge, models.MsgTooLarge, err)
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		first := validationErrs[0]
		if msg, ok := fieldMessages[first.Field()+"."+first.Tag()]; ok {
			return models.NewAPIError(models.ErrKindValidation, msg, err)
		}
	}
	return models.NewAPIError(models.ErrKindValidation, models.MsgInvalidData, err)
}

// abortWithError responde o erro no formato {ok:false, error, message}
func abortWithError(c *gin.Context, apiErr *models.APIError) {
	_ = c.Error(apiErr)
	c.AbortWithStatusJSON(apiErr.Kind.Status(), apiErr.Response())
}

// limitBody impede leituras além de max bytes
func limitBody(c *gin.Context, max int64) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
}
