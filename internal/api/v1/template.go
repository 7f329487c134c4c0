package v1

import (
	"net/http"

	"github.com/billfold/billfold/internal/api/dto"
	ierr "github.com/billfold/billfold/internal/errors"
	"github.com/billfold/billfold/internal/logger"
	"github.com/billfold/billfold/internal/service"
	"github.com/gin-gonic/gin"
)

type TemplateHandler struct {
	service service.TemplateService
	log     *logger.Logger
}

func NewTemplateHandler(service service.TemplateService, log *logger.Logger) *TemplateHandler {
	return &TemplateHandler{service: service, log: log}
}

// @Summary Create a contract template
// @Description Create a contract template
// @Tags Templates
// @Accept json
// @Produce json
// @Param template body dto.CreateTemplateRequest true "Template"
// @Success 201 {object} dto.TemplateResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /templates [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Please check the request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateTemplate(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a template
// @Description Get a template by ID
// @Tags Templates
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} dto.TemplateResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /templates/{id} [get]
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	resp, err := h.service.GetTemplate(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get the default template
// @Description Get the active default template
// @Tags Templates
// @Accept json
// @Produce json
// @Success 200 {object} dto.TemplateResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /templates/default [get]
func (h *TemplateHandler) GetDefaultTemplate(c *gin.Context) {
	resp, err := h.service.GetDefaultTemplate(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List templates
// @Description List all templates
// @Tags Templates
// @Accept json
// @Produce json
// @Success 200 {object} dto.ListTemplatesResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /templates [get]
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	resp, err := h.service.ListTemplates(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a template
// @Description Partially update a template
// @Tags Templates
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Param template body dto.UpdateTemplateRequest true "Template"
// @Success 200 {object} dto.TemplateResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /templates/{id} [put]
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	var req dto.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Please check the request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateTemplate(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Set the default template
// @Description Mark a template as the active default
// @Tags Templates
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} dto.TemplateResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /templates/{id}/default [put]
func (h *TemplateHandler) SetDefaultTemplate(c *gin.Context) {
	resp, err := h.service.SetDefaultTemplate(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a template
// @Description Delete a non-default template
// @Tags Templates
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Success 204
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /templates/{id} [delete]
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	if err := h.service.DeleteTemplate(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
