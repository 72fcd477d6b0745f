package handlers

// AppHandlers bundles every handler the router registers.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	UserHandler        *UserHandler
	JobHandler         *JobHandler
	ApplicationHandler *ApplicationHandler
}
