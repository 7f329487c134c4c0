package v1

import (
	"net/http"

	"github.com/billfold/billfold/internal/api/dto"
	ierr "github.com/billfold/billfold/internal/errors"
	"github.com/billfold/billfold/internal/logger"
	"github.com/billfold/billfold/internal/service"
	"github.com/gin-gonic/gin"
)

type CurrencyHandler struct {
	service service.CurrencyService
	log     *logger.Logger
}

func NewCurrencyHandler(service service.CurrencyService, log *logger.Logger) *CurrencyHandler {
	return &CurrencyHandler{service: service, log: log}
}

// @Summary Convert an amount between currencies
// @Description Convert an amount using live rates with static fallback
// @Tags Currency
// @Accept json
// @Produce json
// @Param request body dto.ConvertCurrencyRequest true "Conversion"
// @Success 200 {object} dto.ConvertCurrencyResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /currency/convert [post]
func (h *CurrencyHandler) Convert(c *gin.Context) {
	var req dto.ConvertCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Please check the request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Convert(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get exchange rates
// @Description Current exchange rates relative to USD
// @Tags Currency
// @Accept json
// @Produce json
// @Success 200 {object} map[string]decimal.Decimal
// @Router /currency/rates [get]
func (h *CurrencyHandler) GetRates(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.GetRates(c.Request.Context()))
}
