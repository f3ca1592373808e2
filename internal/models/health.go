package models

// HealthResponse 健康检查响应结构
// @Description 健康检查API响应数据结构
type HealthResponse struct {
	Version   string  `json:"version" example:"1.0.0" description:"keeper version"`
	StartTime string  `json:"startTime" example:"2024-01-01T10:00:00Z" description:"start time"`
	Status    string  `json:"status" example:"UP" description:"keeper status"`
	Uptime    string  `json:"uptime" example:"1h30m45s" description:"uptime"`
	Tomcat    string  `json:"tomcat" example:"running" description:"managed server status"`
	Metrics   Metrics `json:"metrics" description:"key counters"`
}

// Metrics 关键指标结构
// @Description 系统关键指标数据结构
type Metrics struct {
	TotalRequests int64 `json:"totalRequests" example:"1000"`
	ErrorRequests int64 `json:"errorRequests" example:"5"`
	Deployments   int64 `json:"deployments" example:"3"`
	Rollbacks     int64 `json:"rollbacks" example:"1"`
	Backups       int   `json:"backups" example:"4"`
}
