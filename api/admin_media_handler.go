package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rpupo63/bilingual-portfolio-backend/errs"
	"github.com/rpupo63/bilingual-portfolio-backend/models"
	"github.com/rpupo63/bilingual-portfolio-backend/services"
)

const (
	multipartOverheadBytes = 1 << 20
	multipartMemoryBytes   = 8 << 20
)

// listMedia returns the library, narrowed by ?type= and ?q= (filename or alt
// text). A type with a slash ("image/png") matches file_type exactly, anything
// else ("image") is a file_type prefix.
func (h adminHandler) listMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		kind := query.Get("type")

		var (
			items []*models.MediaItem
			err   error
		)
		if strings.Contains(kind, "/") {
			items, err = h.services.Media.ByType(r.Context(), kind)
			kind = ""
		} else {
			items, err = h.services.Media.All(r.Context())
		}
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, services.FilterMedia(items, kind, query.Get("q")))
	}
}

// uploadMedia stores the multipart "file" field in the media bucket and
// records it in the library
func (h adminHandler) uploadMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		maxBytes := h.services.Media.MaxUploadBytes()
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverheadBytes)

		if err := r.ParseMultipartForm(multipartMemoryBytes); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(maxBytes))
				return
			}
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		defer file.Close()

		upload := services.Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        file,
			AltTextEn:   formValue(r, "alt_text_en"),
			AltTextVi:   formValue(r, "alt_text_vi"),
		}
		if session, ok := ctxGetSession(r.Context()); ok {
			upload.UploadedBy = &session.UserID
		}

		h.logger.Info().
			Str("filename", header.Filename).
			Int64("size", header.Size).
			Msg("Uploading media file")

		result, err := h.services.Media.Upload(r.Context(), upload)
		writeMutation(h.responder, w, http.StatusCreated, result, err)
	}
}

func (h adminHandler) createMedia() http.HandlerFunc {
	return create(h.responder, h.services.Media.Create)
}

func (h adminHandler) updateMedia() http.HandlerFunc {
	return update(h.responder, h.services.Media.Update)
}

func (h adminHandler) deleteMedia() http.HandlerFunc {
	return byID(h.responder, h.services.Media.Delete)
}

// formValue returns a trimmed form field, or nil when it is blank
func formValue(r *http.Request, name string) *string {
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" {
		return nil
	}
	return &v
}
