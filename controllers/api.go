package controllers

import (
	"errors"
	"net/http"

	"catalina-keeper/internal/models"
	"catalina-keeper/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const apiPrefix = "/keeper/api/v1"

type APIController struct {
	keeper *services.Keeper
}

/**
 * Create new API controller instance
 * @param {*services.Keeper} keeper - Keeper owning the managed Tomcat
 * @returns {*APIController} New API controller instance
 */
func NewAPIController(keeper *services.Keeper) *APIController {
	return &APIController{
		keeper: keeper,
	}
}

/**
 * Register health and metrics routes
 * @param {*gin.Engine} r - Gin router instance
 * @example
 * router := gin.Default()
 * NewAPIController(keeper).RegisterRoutes(router)
 */
func (a *APIController) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", a.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// @Summary 业务就绪探针
// @Description 返回keeper版本、启动时间、Tomcat状态和关键指标统计结果
// @Tags System
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /healthz [get]
func (a *APIController) Healthz(c *gin.Context) {
	response := a.keeper.GetHealthz(c.Request.Context())
	c.JSON(200, response)
}

// statusOf 把错误分类映射为HTTP状态码
func statusOf(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrExternalCommand):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, scope string, err error) {
	c.JSON(statusOf(err), &models.ErrorResponse{
		Code:  models.ErrorCode(scope, err),
		Error: err.Error(),
	})
}
