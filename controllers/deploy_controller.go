package controllers

import (
	"net/http"

	"catalina-keeper/internal/models"
	"catalina-keeper/services"

	"github.com/gin-gonic/gin"
)

type DeployController struct {
	deploy *services.DeployManager
}

func NewDeployController(deploy *services.DeployManager) *DeployController {
	return &DeployController{
		deploy: deploy,
	}
}

// DeployRequest 部署请求
type DeployRequest struct {
	WarPath string `json:"warPath" binding:"required"`
}

func (d *DeployController) RegisterRoutes(r *gin.Engine) {
	api := r.Group(apiPrefix)
	api.POST("/deployments", d.Deploy)
	api.POST("/deployments/rollback", d.Rollback)
	api.GET("/backups", d.ListBackups)
}

// Deploy installs a WAR and restarts Tomcat
//
//	@Summary		Deploy WAR
//	@Tags			Deployments
//	@Accept			json
//	@Produce		json
//	@Param			request	body		DeployRequest	true	"WAR path on the keeper host"
//	@Success		200		{object}	models.DeployResult
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/keeper/api/v1/deployments [post]
func (d *DeployController) Deploy(c *gin.Context) {
	var req DeployRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, &models.ErrorResponse{
			Code:  "deploy.invalid_argument",
			Error: err.Error(),
		})
		return
	}
	res, err := d.deploy.Deploy(c.Request.Context(), req.WarPath)
	if err != nil {
		respondError(c, "deploy", err)
		return
	}
	c.JSON(200, res)
}

//	@Summary		Roll back to the latest backup
//	@Tags			Deployments
//	@Produce		json
//	@Success		200	{object}	models.RollbackResult
//	@Router			/keeper/api/v1/deployments/rollback [post]
func (d *DeployController) Rollback(c *gin.Context) {
	res, err := d.deploy.Rollback(c.Request.Context())
	if err != nil {
		respondError(c, "rollback", err)
		return
	}
	c.JSON(200, res)
}

//	@Summary		List backups, newest first
//	@Tags			Deployments
//	@Produce		json
//	@Success		200	{array}	models.BackupInfo
//	@Router			/keeper/api/v1/backups [get]
func (d *DeployController) ListBackups(c *gin.Context) {
	backups, err := d.deploy.ListBackups()
	if err != nil {
		respondError(c, "backups", err)
		return
	}
	if backups == nil {
		backups = []models.BackupInfo{}
	}
	c.JSON(200, backups)
}
