package analytics

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pipelinecrm/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/analytics/dashboard", h.Dashboard)
	rg.GET("/analytics/principal-activity", h.PrincipalActivity)
}

func (h *Handler) Dashboard(c *gin.Context) {
	kpis, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute dashboard KPIs")
		return
	}
	response.Success(c, http.StatusOK, kpis)
}

func (h *Handler) PrincipalActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	rows, err := h.service.PrincipalActivity(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute principal activity")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"principals": rows})
}
