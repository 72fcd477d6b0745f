package handlers

import (
	"net/http"

	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobService services.JobService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService) *JobHandler {
	return &JobHandler{
		BaseHandler: base,
		jobService:  jobService,
	}
}

func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup) {
	jobs := rg.Group("/jobs")
	jobs.Use(middleware.AuthMiddleware())
	{
		jobs.GET("/:id", h.Get)

		seeker := jobs.Group("")
		seeker.Use(middleware.RoleMiddleware(models.UserRoleSeeker))
		{
			seeker.GET("/browse", h.Browse)
			seeker.GET("/all-available", h.AllAvailable)
		}

		poster := jobs.Group("")
		poster.Use(middleware.RoleMiddleware(models.UserRolePoster))
		{
			poster.POST("", h.Create)
			poster.GET("/all", h.ListActive)
			poster.GET("/my-jobs", h.ListMine)
			poster.PUT("/:id", h.Update)
			poster.DELETE("/:id", h.Delete)
		}
	}
}

func (h *JobHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.jobService.Get(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.Update(userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.jobService.Delete(userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted"})
}

func (h *JobHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.ListMine(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *JobHandler) ListActive(c *gin.Context) {
	jobs, err := h.jobService.ListActive()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *JobHandler) Browse(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	showAll := c.Query("showAll") == "true"

	result, err := h.jobService.Browse(userID, showAll)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AllAvailable is the browse view with the preference filter switched off.
func (h *JobHandler) AllAvailable(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	result, err := h.jobService.Browse(userID, true)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": result.Jobs})
}
