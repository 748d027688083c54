package healthcheckController

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

const readyTimeout = 2 * time.Second

// Checker проверка одного внешнего сервиса (Ping)
type Checker func(ctx context.Context) error

type HealthCheckController struct {
	checkers map[string]Checker
	log      *slog.Logger
}

func New(checkers map[string]Checker, log *slog.Logger) *HealthCheckController {
	if checkers == nil {
		checkers = map[string]Checker{}
	}
	return &HealthCheckController{
		checkers: checkers,
		log:      log,
	}
}

func (c *HealthCheckController) RegisterRoutes(r *gin.Engine) {
	r.GET("/", c.root)
	r.GET("/health", c.health)
	r.GET("/ready", c.ready)
}

// root проверка живости сервиса, без авторизации
func (c *HealthCheckController) root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "Natal API up",
	})
}

// health базовая проверка (всегда возвращает 200)
func (c *HealthCheckController) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "natal-api",
	})
}

// ready пингует все включённые внешние сервисы
func (c *HealthCheckController) ready(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), readyTimeout)
	defer cancel()

	names := make([]string, 0, len(c.checkers))
	for name := range c.checkers {
		names = append(names, name)
	}
	sort.Strings(names)

	failed := make(map[string]string)
	for _, name := range names {
		if err := c.checkers[name](pingCtx); err != nil {
			c.log.Error("dependency not ready", "dependency", name, "error", err)
			failed[name] = "unavailable"
		}
	}

	if len(failed) > 0 {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"errors": failed,
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}
