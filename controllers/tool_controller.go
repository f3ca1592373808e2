package controllers

import (
	"fmt"
	"net/http"

	"catalina-keeper/internal/models"
	"catalina-keeper/services"

	"github.com/gin-gonic/gin"
)

type ToolController struct {
	tools *services.ToolRegistry
}

func NewToolController(tools *services.ToolRegistry) *ToolController {
	return &ToolController{
		tools: tools,
	}
}

/**
 * Register tool dispatch routes
 * @param {*gin.Engine} r - Gin router instance
 * @description
 * - GET  /keeper/api/v1/tools        list tools
 * - POST /keeper/api/v1/tools/:name  call a tool, optional JSON object body as arguments
 */
func (t *ToolController) RegisterRoutes(r *gin.Engine) {
	api := r.Group(apiPrefix)
	api.GET("/tools", t.ListTools)
	api.POST("/tools/:name", t.CallTool)
}

// ListTools lists the callable tools
//
//	@Summary		List tools
//	@Tags			Tools
//	@Produce		json
//	@Success		200	{array}	models.ToolInfo
//	@Router			/keeper/api/v1/tools [get]
func (t *ToolController) ListTools(c *gin.Context) {
	c.JSON(200, t.tools.ListTools())
}

// CallTool invokes a tool by name
//
//	@Summary		Call tool
//	@Tags			Tools
//	@Accept			json
//	@Produce		json
//	@Param			name	path		string					true	"Tool name"
//	@Param			args	body		map[string]interface{}	false	"Tool arguments"
//	@Success		200		{object}	models.TextResponse
//	@Failure		400		{object}	models.ErrorResponse	"Invalid argument"
//	@Failure		404		{object}	models.ErrorResponse	"Unknown tool"
//	@Failure		502		{object}	models.ErrorResponse	"Control command failed"
//	@Router			/keeper/api/v1/tools/{name} [post]
func (t *ToolController) CallTool(c *gin.Context) {
	name := c.Param("name")

	var body map[string]interface{}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, &models.ErrorResponse{
				Code:  "tool.invalid_argument",
				Error: fmt.Sprintf("invalid arguments: %v", err),
			})
			return
		}
	}
	args := make(map[string]string, len(body))
	for k, v := range body {
		if v != nil {
			args[k] = fmt.Sprint(v)
		}
	}

	text, err := t.tools.CallTool(c.Request.Context(), name, args)
	if err != nil {
		respondError(c, "tool", err)
		return
	}
	c.JSON(200, &models.TextResponse{Tool: name, Text: text})
}
