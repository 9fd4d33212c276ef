package api

import (
	"time"

	"github.com/rpupo63/bilingual-portfolio-backend/auth"
	"github.com/rpupo63/bilingual-portfolio-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, secureCookie bool, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		publicHandler: newPublicHandler(deps.Services),
		authHandler:   newAuthHandler(deps.Provider, deps.Guard, secureCookie),
		adminHandler:  newAdminHandler(deps.Services),
		healthHandler: newHealthHandler(deps.DB, startupTime),
	}
}

// Dependencies are the collaborators the router serves requests with
type Dependencies struct {
	Services *services.Services
	Provider auth.Provider
	Guard    *auth.Guard
	DB       Pinger
}
