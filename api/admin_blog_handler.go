package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rpupo63/bilingual-portfolio-backend/errs"
)

func (h adminHandler) listPosts() http.HandlerFunc {
	return list(h.responder, h.services.Blog.All)
}

func (h adminHandler) getPost() http.HandlerFunc {
	return getByID(h.responder, h.services.Blog.ByID)
}

func (h adminHandler) createPost() http.HandlerFunc {
	return create(h.responder, h.services.Blog.Create)
}

func (h adminHandler) updatePost() http.HandlerFunc {
	return update(h.responder, h.services.Blog.Update)
}

func (h adminHandler) deletePost() http.HandlerFunc {
	return byID(h.responder, h.services.Blog.Delete)
}

func (h adminHandler) togglePostPublished() http.HandlerFunc {
	return byID(h.responder, h.services.Blog.TogglePublished)
}

func (h adminHandler) togglePostFeatured() http.HandlerFunc {
	return byID(h.responder, h.services.Blog.ToggleFeatured)
}

func (h adminHandler) listTags() http.HandlerFunc {
	return list(h.responder, h.services.Blog.Tags)
}

func (h adminHandler) createTag() http.HandlerFunc {
	return create(h.responder, h.services.Blog.CreateTag)
}

func (h adminHandler) deleteTag() http.HandlerFunc {
	return byID(h.responder, h.services.Blog.DeleteTag)
}

func (h adminHandler) postTags() http.HandlerFunc {
	return getByID(h.responder, h.services.Blog.TagsForPost)
}

type postTagsRequest struct {
	TagIDs []uuid.UUID `json:"tag_ids"`
}

// replacePostTags makes tag_ids the complete tag set of the post. An empty
// list removes every tag.
func (h adminHandler) replacePostTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, req, err := h.readPostTags(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		result, err := h.services.Blog.ReplacePostTags(r.Context(), postID, req.TagIDs)
		writeMutation(h.responder, w, http.StatusOK, result, err)
	}
}

// linkPostTags adds tag_ids to the post, keeping the tags it already has
func (h adminHandler) linkPostTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, req, err := h.readPostTags(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if len(req.TagIDs) == 0 {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("tag_ids"))
			return
		}
		result, err := h.services.Blog.LinkPostToTags(r.Context(), postID, req.TagIDs)
		writeMutation(h.responder, w, http.StatusOK, result, err)
	}
}

func (h adminHandler) unlinkPostTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := parseID(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		tagID, err := parseID(r, "tagID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		result, err := h.services.Blog.UnlinkPostFromTag(r.Context(), postID, tagID)
		writeMutation(h.responder, w, http.StatusOK, result, err)
	}
}

func (h adminHandler) readPostTags(w http.ResponseWriter, r *http.Request) (uuid.UUID, postTagsRequest, error) {
	var req postTagsRequest
	postID, err := parseID(r, "id")
	if err != nil {
		return uuid.Nil, req, err
	}
	if err := decodeJSON(w, r, &req); err != nil {
		return uuid.Nil, req, err
	}
	return postID, req, nil
}
