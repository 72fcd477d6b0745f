package handlers

import (
	"net/http"

	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewUserHandler(base *BaseHandler, profileService services.ProfileService) *UserHandler {
	return &UserHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/profile", h.Get)
		users.PUT("/profile", h.UpdateProfile)
		// Preferences drive the seeker-only browse filter; posters have
		// nothing to store there.
		users.PUT("/preferences", middleware.RoleMiddleware(models.UserRoleSeeker), h.UpdatePreferences)
		users.PUT("/resume", h.UpdateResume)
	}
}

func (h *UserHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	user, err := h.profileService.Get(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.profileService.UpdateProfile(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePreferencesRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.profileService.UpdatePreferences(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateResume(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateResumeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.profileService.UpdateResume(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
