package handlers

import (
	dto "github.com/osa911/contactrelay/internal/api/dto/v1/contact"
	"github.com/osa911/contactrelay/internal/contact"
	"github.com/osa911/contactrelay/internal/utils"
	"github.com/osa911/contactrelay/internal/version"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	service *contact.Service
}

func NewHealthHandler(service *contact.Service) *HealthHandler {
	return &HealthHandler{service: service}
}

func (h *HealthHandler) Check(c *gin.Context) {
	utils.HandleSuccess(c, dto.ContactStatus{
		Status:    "ok",
		Transport: h.service.Transport(),
		Version:   version.GetVersionString(),
	})
}
