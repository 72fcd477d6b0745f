package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the envelope every error response uses.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

type GinErrorHandler struct {
	Debug bool
}

// HandleGinError maps any error to an AppError and writes the response.
// Non-AppError failures become a generic 500; details are hidden unless
// Debug is set.
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
		if !h.Debug {
			appErr.Message = "Internal server error"
			appErr.Details = nil
		}
	}

	if appErr.HTTPCode >= 500 {
		slog.Error("server error", "error", appErr.Error())
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: gin.Mode() != gin.ReleaseMode}
	handler.HandleGinError(c, err)
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
