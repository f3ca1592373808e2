package controllers

import (
	"net/http"
	"strconv"

	"catalina-keeper/internal/models"
	"catalina-keeper/services"

	"github.com/gin-gonic/gin"
)

type TomcatController struct {
	keeper *services.Keeper
}

func NewTomcatController(keeper *services.Keeper) *TomcatController {
	return &TomcatController{
		keeper: keeper,
	}
}

/**
 * Register Tomcat lifecycle and diagnostic routes, answering with structured JSON
 * @param {*gin.Engine} r - Gin router instance
 */
func (tc *TomcatController) RegisterRoutes(r *gin.Engine) {
	api := r.Group(apiPrefix + "/tomcat")
	api.GET("/status", tc.Status)
	api.POST("/start", tc.Start)
	api.POST("/stop", tc.Stop)
	api.POST("/restart", tc.Restart)
	api.GET("/logs", tc.Logs)
	api.GET("/diagnosis", tc.Diagnose)
	api.GET("/gc", tc.AnalyzeGC)
	api.POST("/thread-dump", tc.ThreadDump)
	api.POST("/heap-dump", tc.HeapDump)
}

// Status probes the Tomcat port
//
//	@Summary		Tomcat status
//	@Tags			Tomcat
//	@Produce		json
//	@Success		200	{object}	models.ServerStatus
//	@Failure		502	{object}	models.ErrorResponse
//	@Router			/keeper/api/v1/tomcat/status [get]
func (tc *TomcatController) Status(c *gin.Context) {
	st, err := tc.keeper.Process().Status(c.Request.Context())
	if err != nil {
		respondError(c, "tomcat", err)
		return
	}
	c.JSON(200, st)
}

//	@Summary		Trigger Tomcat startup
//	@Tags			Tomcat
//	@Success		202	{object}	models.TextResponse
//	@Router			/keeper/api/v1/tomcat/start [post]
func (tc *TomcatController) Start(c *gin.Context) {
	text := tc.keeper.Process().Start(c.Request.Context())
	c.JSON(http.StatusAccepted, &models.TextResponse{Tool: "start_tomcat", Text: text})
}

//	@Summary		Trigger Tomcat shutdown
//	@Tags			Tomcat
//	@Success		202	{object}	models.TextResponse
//	@Router			/keeper/api/v1/tomcat/stop [post]
func (tc *TomcatController) Stop(c *gin.Context) {
	text := tc.keeper.Process().Stop(c.Request.Context())
	c.JSON(http.StatusAccepted, &models.TextResponse{Tool: "stop_tomcat", Text: text})
}

//	@Summary		Stop, settle and start Tomcat
//	@Tags			Tomcat
//	@Success		202	{object}	models.TextResponse
//	@Router			/keeper/api/v1/tomcat/restart [post]
func (tc *TomcatController) Restart(c *gin.Context) {
	if err := tc.keeper.Process().RestartCycle(c.Request.Context()); err != nil {
		respondError(c, "tomcat", err)
		return
	}
	c.JSON(http.StatusAccepted, &models.TextResponse{Tool: "restart_tomcat", Text: "Tomcat restart triggered"})
}

// Logs returns the tail of the latest catalina log
//
//	@Summary		Latest catalina log
//	@Tags			Tomcat
//	@Param			lines	query		int	false	"Number of lines"
//	@Success		200		{object}	models.TextResponse
//	@Router			/keeper/api/v1/tomcat/logs [get]
func (tc *TomcatController) Logs(c *gin.Context) {
	lines := 0
	if s := c.Query("lines"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, &models.ErrorResponse{
				Code:  "logs.invalid_argument",
				Error: "lines must be a positive integer",
			})
			return
		}
		lines = n
	}
	text, err := tc.keeper.ReadLatestLog(lines)
	if err != nil {
		respondError(c, "logs", err)
		return
	}
	c.JSON(200, &models.TextResponse{Tool: "read_latest_catalina_log", Text: text})
}

//	@Summary		Diagnose startup failure
//	@Tags			Tomcat
//	@Success		200	{object}	models.DiagnosisReport
//	@Router			/keeper/api/v1/tomcat/diagnosis [get]
func (tc *TomcatController) Diagnose(c *gin.Context) {
	report, err := tc.keeper.Diagnosis().DiagnoseStartupFailure(c.Request.Context())
	if err != nil {
		respondError(c, "diagnosis", err)
		return
	}
	c.JSON(200, report)
}

//	@Summary		Analyze GC log
//	@Tags			Tomcat
//	@Success		200	{object}	models.GCStats
//	@Router			/keeper/api/v1/tomcat/gc [get]
func (tc *TomcatController) AnalyzeGC(c *gin.Context) {
	stats, err := tc.keeper.GC().Analyze()
	if err != nil {
		respondError(c, "gc", err)
		return
	}
	c.JSON(200, gin.H{
		"stats":          stats,
		"memoryPressure": stats.MemoryPressure(),
		"interpretation": stats.Interpretation(),
	})
}

//	@Summary		Thread dump
//	@Tags			Tomcat
//	@Success		200	{object}	models.ThreadDumpResult
//	@Failure		404	{object}	models.ErrorResponse	"Tomcat JVM process not found"
//	@Router			/keeper/api/v1/tomcat/thread-dump [post]
func (tc *TomcatController) ThreadDump(c *gin.Context) {
	res, err := tc.keeper.Capture().ThreadDump(c.Request.Context())
	if err != nil {
		respondError(c, "dump", err)
		return
	}
	if !res.Process.Found {
		c.JSON(http.StatusNotFound, &models.ErrorResponse{Code: "dump.not_found", Error: models.JvmNotFoundText})
		return
	}
	c.JSON(200, res)
}

//	@Summary		Heap dump
//	@Tags			Tomcat
//	@Success		202	{object}	models.HeapDumpResult
//	@Failure		404	{object}	models.ErrorResponse	"Tomcat JVM process not found"
//	@Router			/keeper/api/v1/tomcat/heap-dump [post]
func (tc *TomcatController) HeapDump(c *gin.Context) {
	res, err := tc.keeper.Capture().HeapDump(c.Request.Context())
	if err != nil {
		respondError(c, "dump", err)
		return
	}
	if !res.Process.Found {
		c.JSON(http.StatusNotFound, &models.ErrorResponse{Code: "dump.not_found", Error: models.JvmNotFoundText})
		return
	}
	c.JSON(http.StatusAccepted, res)
}
