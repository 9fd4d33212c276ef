package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/bilingual-portfolio-backend/errs"
	"github.com/rpupo63/bilingual-portfolio-backend/i18n"
	"github.com/rpupo63/bilingual-portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// publicHandler serves the localized pages and lists of the public site
type publicHandler struct {
	responder Responder
	logger    zerolog.Logger
	services  *services.Services
}

func newPublicHandler(s *services.Services) publicHandler {
	logger := log.With().Str("handlerName", "publicHandler").Logger()

	return publicHandler{
		responder: NewResponder(logger),
		logger:    logger,
		services:  s,
	}
}

// homePage returns the profile with the featured content of every section
func (h publicHandler) homePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.services.Pages.Home(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, presentHome(page, i18n.FromContext(r.Context())))
	}
}

func (h publicHandler) aboutPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.services.Pages.About(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, presentAbout(page, i18n.FromContext(r.Context())))
	}
}

func (h publicHandler) contactPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.services.Pages.Contact(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		lang := i18n.FromContext(r.Context())
		h.responder.WriteJSON(w, ContactPageView{Lang: lang, Profile: presentProfile(page.Profile, lang)})
	}
}

func (h publicHandler) footer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		footer, err := h.services.Pages.Footer(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, presentFooter(footer, i18n.FromContext(r.Context())))
	}
}

func (h publicHandler) experiences() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.services.Experiences.Published(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, presentExperiences(items, i18n.FromContext(r.Context())))
	}
}

func (h publicHandler) projects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.services.Projects.Published(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, presentProjects(items, i18n.FromContext(r.Context())))
	}
}

// featuredProjects honors ?limit=, falling back to the default count
func (h publicHandler) featuredProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.services.Projects.Featured(r.Context(), intQuery(r, "limit", 0))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, presentProjects(items, i18n.FromContext(r.Context())))
	}
}

func (h publicHandler) project() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.services.Projects.BySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, presentProject(project, i18n.FromContext(r.Context())))
	}
}

func (h publicHandler) activities() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.services.Activities.Published(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, presentActivities(items, i18n.FromContext(r.Context())))
	}
}

func (h publicHandler) featuredActivities() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.services.Activities.Featured(r.Context(), intQuery(r, "limit", 0))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, presentActivities(items, i18n.FromContext(r.Context())))
	}
}

// posts returns one page of published posts (?page=, ?limit=)
func (h publicHandler) posts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.services.Blog.Published(r.Context(), intQuery(r, "page", 1), intQuery(r, "limit", 0))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, presentPostPage(page, i18n.FromContext(r.Context())))
	}
}

func (h publicHandler) featuredPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.services.Blog.Featured(r.Context(), intQuery(r, "limit", 0))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, presentPosts(items, i18n.FromContext(r.Context())))
	}
}

// searchPosts matches ?q= against published posts in both languages
func (h publicHandler) searchPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.services.Blog.Search(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, presentPosts(items, i18n.FromContext(r.Context())))
	}
}

// postsByCategory matches the category column of the display language
func (h publicHandler) postsByCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := i18n.FromContext(r.Context())
		items, err := h.services.Blog.ByCategory(r.Context(), chi.URLParam(r, "category"), lang)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, presentPosts(items, lang))
	}
}

func (h publicHandler) tags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.services.Blog.Tags(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, presentTags(items, i18n.FromContext(r.Context())))
	}
}

func (h publicHandler) postsByTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, err := parseID(r, "tagID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		items, err := h.services.Blog.ByTag(r.Context(), tagID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, presentPosts(items, i18n.FromContext(r.Context())))
	}
}

// post returns a published post with its body and counts the view
func (h publicHandler) post() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := h.services.Blog.BySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, presentPost(post, i18n.FromContext(r.Context()), true))
	}
}

func (h publicHandler) settings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.services.Settings.All(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, presentSettings(items, i18n.FromContext(r.Context())))
	}
}

func (h publicHandler) setting() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setting, err := h.services.Settings.ByKey(r.Context(), chi.URLParam(r, "key"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if setting == nil {
			h.responder.WriteNotFound(w)
			return
		}
		h.responder.WriteJSON(w, presentSetting(setting, i18n.FromContext(r.Context())))
	}
}

type languageRequest struct {
	Lang string `json:"lang"`
}

// setLanguage remembers the visitor's language choice
func (h publicHandler) setLanguage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req languageRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		lang, ok := i18n.Parse(req.Lang)
		if !ok {
			h.responder.WriteError(w, errs.NewInvalidFieldError("lang", "must be one of en, vi"))
			return
		}
		i18n.SetLanguageCookie(w, lang)
		w.Header().Set("Content-Language", lang.String())
		h.responder.WriteJSON(w, map[string]string{"lang": lang.String()})
	}
}

// sendContact forwards a contact form message to the site owner
func (h publicHandler) sendContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var msg services.ContactMessage
		if err := decodeJSON(w, r, &msg); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		result, err := h.services.Contact.SendContactMessage(r.Context(), msg)
		writeMutation(h.responder, w, http.StatusAccepted, result, err)
	}
}
