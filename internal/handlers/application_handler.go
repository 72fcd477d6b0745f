package handlers

import (
	"net/http"

	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	apps := rg.Group("/applications")
	apps.Use(middleware.AuthMiddleware())
	{
		seeker := apps.Group("")
		seeker.Use(middleware.RoleMiddleware(models.UserRoleSeeker))
		{
			seeker.POST("/:jobId/apply", h.Apply)
			seeker.GET("/my-applications", h.ListMine)
			seeker.GET("/stats", h.Stats)
		}

		poster := apps.Group("")
		poster.Use(middleware.RoleMiddleware(models.UserRolePoster))
		{
			poster.GET("/my-job-applications", h.ListForPoster)
			poster.GET("/job/:jobId", h.ListForJob)
			poster.PUT("/:id/status", h.UpdateStatus)
		}
	}
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	app, err := h.applicationService.Apply(userID, c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	app, err := h.applicationService.UpdateStatus(userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	apps, err := h.applicationService.ListMine(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	apps, err := h.applicationService.ListForJob(userID, c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *ApplicationHandler) ListForPoster(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	apps, err := h.applicationService.ListForPoster(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *ApplicationHandler) Stats(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	stats, err := h.applicationService.Stats(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
