package metricsController

import (
	"github.com/dogumharitan777/astro-api/internal/pkg/metrics"
	"github.com/gin-gonic/gin"
)

type MetricsController struct {
	metrics *metrics.Metrics
}

func New(m *metrics.Metrics) *MetricsController {
	return &MetricsController{metrics: m}
}

func (c *MetricsController) RegisterRoutes(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(c.metrics.Handler()))
}
