package v1

import (
	"net/http"

	"github.com/billfold/billfold/internal/api/dto"
	ierr "github.com/billfold/billfold/internal/errors"
	"github.com/billfold/billfold/internal/logger"
	"github.com/billfold/billfold/internal/service"
	"github.com/gin-gonic/gin"
)

type ContractHandler struct {
	service service.ContractService
	log     *logger.Logger
}

func NewContractHandler(service service.ContractService, log *logger.Logger) *ContractHandler {
	return &ContractHandler{service: service, log: log}
}

// @Summary Generate a contract
// @Description Generate a contract and, when possible, its plan invoices
// @Tags Contracts
// @Accept json
// @Produce json
// @Param contract body dto.GenerateContractRequest true "Contract"
// @Success 201 {object} dto.ContractResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /contracts [post]
func (h *ContractHandler) GenerateContract(c *gin.Context) {
	var req dto.GenerateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Please check the request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GenerateContract(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a contract
// @Description Get a contract by ID
// @Tags Contracts
// @Accept json
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {object} dto.ContractResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /contracts/{id} [get]
func (h *ContractHandler) GetContract(c *gin.Context) {
	resp, err := h.service.GetContract(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List contracts
// @Description List all contracts, optionally filtered by client
// @Tags Contracts
// @Accept json
// @Produce json
// @Param client_id query string false "Client ID"
// @Success 200 {object} dto.ListContractsResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /contracts [get]
func (h *ContractHandler) ListContracts(c *gin.Context) {
	var (
		resp *dto.ListContractsResponse
		err  error
	)

	if clientID := c.Query("client_id"); clientID != "" {
		resp, err = h.service.ListContractsByClient(c.Request.Context(), clientID)
	} else {
		resp, err = h.service.ListContracts(c.Request.Context())
	}
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a contract
// @Description Partially update a contract; plan changes regenerate invoices
// @Tags Contracts
// @Accept json
// @Produce json
// @Param id path string true "Contract ID"
// @Param contract body dto.UpdateContractRequest true "Contract"
// @Success 200 {object} dto.ContractResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /contracts/{id} [put]
func (h *ContractHandler) UpdateContract(c *gin.Context) {
	var req dto.UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Please check the request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateContract(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update contract status
// @Description Move a contract to a new lifecycle status
// @Tags Contracts
// @Accept json
// @Produce json
// @Param id path string true "Contract ID"
// @Param request body dto.UpdateContractStatusRequest true "Status"
// @Success 200 {object} dto.ContractResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /contracts/{id}/status [put]
func (h *ContractHandler) UpdateContractStatus(c *gin.Context) {
	var req dto.UpdateContractStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Please check the request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateContractStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a contract
// @Description Delete a contract and its generated invoices
// @Tags Contracts
// @Accept json
// @Produce json
// @Param id path string true "Contract ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /contracts/{id} [delete]
func (h *ContractHandler) DeleteContract(c *gin.Context) {
	if err := h.service.DeleteContract(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get a shared contract
// @Description Resolve a public share token to its contract
// @Tags Share
// @Accept json
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} dto.ContractResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /share/contract/{token} [get]
func (h *ContractHandler) GetSharedContract(c *gin.Context) {
	resp, err := h.service.GetContractByShareToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
