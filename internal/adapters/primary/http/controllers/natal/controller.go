package natalController

import (
	"log/slog"
	"net/http"

	"github.com/dogumharitan777/astro-api/internal/adapters/primary/http/middlewares"
	"github.com/dogumharitan777/astro-api/internal/domain"
	"github.com/dogumharitan777/astro-api/internal/ports/usecase"
	"github.com/gin-gonic/gin"
)

type NatalController struct {
	natal  usecase.INatalUseCase
	secret string
	log    *slog.Logger
}

func New(natal usecase.INatalUseCase, secret string, log *slog.Logger) *NatalController {
	return &NatalController{
		natal:  natal,
		secret: secret,
		log:    log,
	}
}

func (c *NatalController) RegisterRoutes(r *gin.Engine) {
	r.POST("/natal", middlewares.APIKey(c.secret, c.log), c.calculate)
}

// calculate POST /natal
func (c *NatalController) calculate(ctx *gin.Context) {
	var req natalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"detail": domain.WrapInputError(err).Error(),
		})
		return
	}

	requestID := middlewares.GetRequestID(ctx)
	chart, err := c.natal.Calculate(ctx.Request.Context(), requestID, req.toDomain())
	if err != nil {
		if domain.IsInputError(err) {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"detail": err.Error(),
			})
			return
		}

		c.log.Error("failed to calculate natal chart",
			"error", err,
			"request_id", requestID,
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"detail": "Internal Server Error",
		})
		return
	}

	if len(chart.Missing) > 0 {
		c.log.Info("natal chart is partial",
			"request_id", requestID,
			"missing", chart.Missing,
		)
	}

	ctx.JSON(http.StatusOK, newNatalResponse(chart))
}
