package v1

import (
	"net/http"

	"github.com/billfold/billfold/internal/logger"
	"github.com/billfold/billfold/internal/service"
	"github.com/gin-gonic/gin"
)

type TimelineHandler struct {
	service service.TimelineService
	log     *logger.Logger
}

func NewTimelineHandler(service service.TimelineService, log *logger.Logger) *TimelineHandler {
	return &TimelineHandler{service: service, log: log}
}

// @Summary Get the payment timeline
// @Description Unified payment timeline across all clients
// @Tags Timeline
// @Accept json
// @Produce json
// @Success 200 {object} dto.TimelineResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /timeline [get]
func (h *TimelineHandler) GetTimeline(c *gin.Context) {
	resp, err := h.service.GetTimeline(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
