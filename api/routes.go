package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupPublicRoutes serves the localized site content
func setupPublicRoutes(r chi.Router, handlers *routeHandlers) {
	r.Group(func(r chi.Router) {
		r.Use(languageMiddleware)
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/pages/home", handlers.publicHandler.homePage())
		r.Get("/pages/about", handlers.publicHandler.aboutPage())
		r.Get("/pages/contact", handlers.publicHandler.contactPage())
		r.Get("/pages/footer", handlers.publicHandler.footer())

		r.Get("/experiences", handlers.publicHandler.experiences())

		r.Get("/projects", handlers.publicHandler.projects())
		r.Get("/projects/featured", handlers.publicHandler.featuredProjects())
		r.Get("/projects/{slug}", handlers.publicHandler.project())

		r.Get("/activities", handlers.publicHandler.activities())
		r.Get("/activities/featured", handlers.publicHandler.featuredActivities())

		r.Get("/blog/posts", handlers.publicHandler.posts())
		r.Get("/blog/posts/featured", handlers.publicHandler.featuredPosts())
		r.Get("/blog/posts/search", handlers.publicHandler.searchPosts())
		r.Get("/blog/posts/category/{category}", handlers.publicHandler.postsByCategory())
		r.Get("/blog/posts/{slug}", handlers.publicHandler.post())
		r.Get("/blog/tags", handlers.publicHandler.tags())
		r.Get("/blog/tags/{tagID}/posts", handlers.publicHandler.postsByTag())

		r.Get("/settings", handlers.publicHandler.settings())
		r.Get("/settings/{key}", handlers.publicHandler.setting())

		r.Put("/language", handlers.publicHandler.setLanguage())
		r.Post("/contact", handlers.publicHandler.sendContact())
	})
}

// setupAdminRoutes sets up the sign-in endpoints and the guarded admin area
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Post("/login", handlers.authHandler.login())
		r.Post("/logout", handlers.authHandler.logout())
		r.Get("/session", handlers.authHandler.session())

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)
			admin := handlers.adminHandler

			r.Get("/profile", admin.getProfile())
			r.Post("/profile", admin.createProfile())
			r.Put("/profile/{id}", admin.updateProfile())
			r.Delete("/profile/{id}", admin.deleteProfile())

			r.Get("/experiences", admin.listExperiences())
			r.Post("/experiences", admin.createExperience())
			r.Get("/experiences/{id}", admin.getExperience())
			r.Put("/experiences/{id}", admin.updateExperience())
			r.Delete("/experiences/{id}", admin.deleteExperience())
			r.Patch("/experiences/{id}/published", admin.toggleExperiencePublished())

			r.Get("/projects", admin.listProjects())
			r.Post("/projects", admin.createProject())
			r.Get("/projects/{id}", admin.getProject())
			r.Put("/projects/{id}", admin.updateProject())
			r.Delete("/projects/{id}", admin.deleteProject())
			r.Patch("/projects/{id}/published", admin.toggleProjectPublished())
			r.Patch("/projects/{id}/featured", admin.toggleProjectFeatured())

			r.Get("/activities", admin.listActivities())
			r.Post("/activities", admin.createActivity())
			r.Get("/activities/{id}", admin.getActivity())
			r.Put("/activities/{id}", admin.updateActivity())
			r.Delete("/activities/{id}", admin.deleteActivity())
			r.Patch("/activities/{id}/published", admin.toggleActivityPublished())
			r.Patch("/activities/{id}/featured", admin.toggleActivityFeatured())

			r.Get("/blog/posts", admin.listPosts())
			r.Post("/blog/posts", admin.createPost())
			r.Get("/blog/posts/{id}", admin.getPost())
			r.Put("/blog/posts/{id}", admin.updatePost())
			r.Delete("/blog/posts/{id}", admin.deletePost())
			r.Patch("/blog/posts/{id}/published", admin.togglePostPublished())
			r.Patch("/blog/posts/{id}/featured", admin.togglePostFeatured())
			r.Get("/blog/posts/{id}/tags", admin.postTags())
			r.Put("/blog/posts/{id}/tags", admin.replacePostTags())
			r.Post("/blog/posts/{id}/tags", admin.linkPostTags())
			r.Delete("/blog/posts/{id}/tags/{tagID}", admin.unlinkPostTag())

			r.Get("/blog/tags", admin.listTags())
			r.Post("/blog/tags", admin.createTag())
			r.Delete("/blog/tags/{id}", admin.deleteTag())

			r.Get("/media", admin.listMedia())
			r.Post("/media", admin.createMedia())
			r.Post("/media/upload", admin.uploadMedia())
			r.Put("/media/{id}", admin.updateMedia())
			r.Delete("/media/{id}", admin.deleteMedia())

			r.Get("/settings", admin.listSettings())
			r.Put("/settings", admin.upsertSetting())
			r.Patch("/settings/{key}", admin.updateSetting())
			r.Delete("/settings/{key}", admin.deleteSetting())
		})
	})
}

// setupOperationalRoutes exposes liveness and Prometheus metrics
func setupOperationalRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/healthz", handlers.healthHandler.health())
	r.Handle("/metrics", promhttp.Handler())
}
