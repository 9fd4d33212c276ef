package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rpupo63/bilingual-portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// adminHandler serves the management endpoints. Responses carry both
// languages of every record.
type adminHandler struct {
	responder Responder
	logger    zerolog.Logger
	services  *services.Services
}

func newAdminHandler(s *services.Services) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder: NewResponder(logger),
		logger:    logger,
		services:  s,
	}
}

func list[T any](responder Responder, read func(context.Context) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := read(r.Context())
		if err != nil {
			responder.WriteError(w, err)
			return
		}
		responder.WriteJSON(w, items)
	}
}

func getByID[T any](responder Responder, read func(context.Context, uuid.UUID) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			responder.WriteError(w, err)
			return
		}
		item, err := read(r.Context(), id)
		if err != nil {
			responder.WriteError(w, err)
			return
		}
		responder.WriteJSON(w, item)
	}
}

// create decodes a new record of type M from the body and hands it to write
func create[M any, T any](responder Responder, write func(context.Context, *M) (services.Mutation[T], error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var record M
		if err := decodeJSON(w, r, &record); err != nil {
			responder.WriteError(w, err)
			return
		}
		result, err := write(r.Context(), &record)
		writeMutation(responder, w, http.StatusCreated, result, err)
	}
}

// update decodes a partial update U and applies it to the record named by {id}
func update[U any, T any](responder Responder, write func(context.Context, uuid.UUID, U) (services.Mutation[T], error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			responder.WriteError(w, err)
			return
		}
		var changes U
		if err := decodeJSON(w, r, &changes); err != nil {
			responder.WriteError(w, err)
			return
		}
		result, err := write(r.Context(), id, changes)
		writeMutation(responder, w, http.StatusOK, result, err)
	}
}

// byID runs a body-less write (delete, toggle) against the record named by {id}
func byID[T any](responder Responder, write func(context.Context, uuid.UUID) (services.Mutation[T], error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			responder.WriteError(w, err)
			return
		}
		result, err := write(r.Context(), id)
		writeMutation(responder, w, http.StatusOK, result, err)
	}
}

func (h adminHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := h.services.Profile.Get(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if profile == nil {
			h.responder.WriteNotFound(w)
			return
		}
		h.responder.WriteJSON(w, profile)
	}
}

func (h adminHandler) createProfile() http.HandlerFunc {
	return create(h.responder, h.services.Profile.Create)
}

func (h adminHandler) updateProfile() http.HandlerFunc {
	return update(h.responder, h.services.Profile.Update)
}

func (h adminHandler) deleteProfile() http.HandlerFunc {
	return byID(h.responder, h.services.Profile.Delete)
}

func (h adminHandler) listExperiences() http.HandlerFunc {
	return list(h.responder, h.services.Experiences.All)
}

func (h adminHandler) getExperience() http.HandlerFunc {
	return getByID(h.responder, h.services.Experiences.ByID)
}

func (h adminHandler) createExperience() http.HandlerFunc {
	return create(h.responder, h.services.Experiences.Create)
}

func (h adminHandler) updateExperience() http.HandlerFunc {
	return update(h.responder, h.services.Experiences.Update)
}

func (h adminHandler) deleteExperience() http.HandlerFunc {
	return byID(h.responder, h.services.Experiences.Delete)
}

func (h adminHandler) toggleExperiencePublished() http.HandlerFunc {
	return byID(h.responder, h.services.Experiences.TogglePublished)
}

func (h adminHandler) listProjects() http.HandlerFunc {
	return list(h.responder, h.services.Projects.All)
}

func (h adminHandler) getProject() http.HandlerFunc {
	return getByID(h.responder, h.services.Projects.ByID)
}

func (h adminHandler) createProject() http.HandlerFunc {
	return create(h.responder, h.services.Projects.Create)
}

func (h adminHandler) updateProject() http.HandlerFunc {
	return update(h.responder, h.services.Projects.Update)
}

func (h adminHandler) deleteProject() http.HandlerFunc {
	return byID(h.responder, h.services.Projects.Delete)
}

func (h adminHandler) toggleProjectPublished() http.HandlerFunc {
	return byID(h.responder, h.services.Projects.TogglePublished)
}

func (h adminHandler) toggleProjectFeatured() http.HandlerFunc {
	return byID(h.responder, h.services.Projects.ToggleFeatured)
}

func (h adminHandler) listActivities() http.HandlerFunc {
	return list(h.responder, h.services.Activities.All)
}

func (h adminHandler) getActivity() http.HandlerFunc {
	return getByID(h.responder, h.services.Activities.ByID)
}

func (h adminHandler) createActivity() http.HandlerFunc {
	return create(h.responder, h.services.Activities.Create)
}

func (h adminHandler) updateActivity() http.HandlerFunc {
	return update(h.responder, h.services.Activities.Update)
}

func (h adminHandler) deleteActivity() http.HandlerFunc {
	return byID(h.responder, h.services.Activities.Delete)
}

func (h adminHandler) toggleActivityPublished() http.HandlerFunc {
	return byID(h.responder, h.services.Activities.TogglePublished)
}

func (h adminHandler) toggleActivityFeatured() http.HandlerFunc {
	return byID(h.responder, h.services.Activities.ToggleFeatured)
}
