package handlers

import (
	"errors"
	"net/http"

	"github.com/osa911/contactrelay/internal/api/dto/common"
	dto "github.com/osa911/contactrelay/internal/api/dto/v1/contact"
	"github.com/osa911/contactrelay/internal/api/validation"
	"github.com/osa911/contactrelay/internal/contact"
	"github.com/osa911/contactrelay/internal/utils"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	service *contact.Service
}

func NewContactHandler(service *contact.Service) *ContactHandler {
	return &ContactHandler{service: service}
}

// Submit relays a posted contact form and redirects the sender.
func (h *ContactHandler) Submit(c *gin.Context) {
	var form dto.ContactForm
	bindErr := c.ShouldBind(&form)

	var maxErr *http.MaxBytesError
	if errors.As(bindErr, &maxErr) {
		utils.HandleAPIError(c, bindErr, http.StatusRequestEntityTooLarge, common.ErrCodeTooLarge, "Request body too large")
		return
	}

	// A post without the submit flag is rejected as such, whatever its fields hold
	submitValue, present := c.GetPostForm("submit")
	submitted := dto.Submitted(submitValue, present)
	if !submitted {
		utils.HandleAPIError(c, contact.ErrNotSubmitted, http.StatusBadRequest, common.ErrCodeBadRequest, "Contact form was not submitted")
		return
	}

	if err := bindErr; err != nil {
		if details := validation.FormatValidationError(err); len(details) > 0 {
			utils.HandleAPIError(c, err, http.StatusUnprocessableEntity, common.ErrCodeValidation, "Invalid contact form", details)
			return
		}
		utils.HandleAPIError(c, err, http.StatusBadRequest, common.ErrCodeBadRequest, "Invalid form data")
		return
	}

	outcome, err := h.service.Submit(c.Request.Context(), contact.Input{
		Submitted: submitted,
		Name:      form.Name,
		Email:     form.Email,
		Message:   form.Message,
	})
	switch {
	case errors.Is(err, contact.ErrNotSubmitted):
		utils.HandleAPIError(c, err, http.StatusBadRequest, common.ErrCodeBadRequest, "Contact form was not submitted")
		return
	case errors.Is(err, contact.ErrInvalidEmail):
		utils.HandleAPIError(c, err, http.StatusUnprocessableEntity, common.ErrCodeValidation, "Invalid email address",
			[]validation.ValidationError{{Field: "Email", Tag: "email"}})
		return
	case err != nil:
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to process contact form")
		return
	}

	utils.HandleRedirect(c, outcome.Redirect)
}
