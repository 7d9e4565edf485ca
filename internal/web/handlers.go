package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/hpungsan/ideabox/internal/errors"
	"github.com/hpungsan/ideabox/internal/ops"
)

// Handlers contains HTTP route handlers for the popup.
type Handlers struct {
	repo     *ops.Repository
	renderer *Renderer
	logger   *zap.Logger
}

// HandlePopup handles GET / and renders the idea list.
func (h *Handlers) HandlePopup(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List(r.Context())
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "popup", PopupPageData{
		PageData: PageData{
			Title:   "Ideas",
			Version: h.renderer.version,
		},
		Ideas:      list,
		CountLabel: countLabel(len(list)),
		EmptyState: EmptyState,
		Fallback:   !h.repo.Authoritative(),
	})
}

// HandleAdd handles POST /ideas.
// Blank text answers 204 so the page, its input and its focus stay untouched.
func (h *Handlers) HandleAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	created, err := h.repo.Add(r.Context(), r.FormValue("text"))
	if err != nil {
		if errors.Is(err, errors.ErrEmptyInput) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusCreated, created)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleDelete handles POST /ideas/{id}/delete and DELETE /ideas/{id}.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("id must be an integer"))
		return
	}

	result, err := h.repo.DeleteByID(r.Context(), id)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleExport handles GET /export and sends the list as a text attachment.
func (h *Handlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	doc, err := h.repo.Export(r.Context())
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc.Content))
}

// HandleClearConfirm handles GET /clear and asks before wiping the list.
func (h *Handlers) HandleClearConfirm(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List(r.Context())
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "confirm", ConfirmPageData{
		PageData: PageData{
			Title:   "Clear All",
			Version: h.renderer.version,
		},
		Prompt: ClearPrompt,
		Count:  len(list),
	})
}

// HandleClear handles POST /clear. Anything but confirm=yes leaves the list alone.
func (h *Handlers) HandleClear(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	confirmed := strings.EqualFold(r.FormValue("confirm"), "yes")
	if !confirmed {
		if wantsJSON(r) {
			h.renderer.renderError(w, r, errors.NewNotConfirmed("clear"))
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	result, err := h.repo.Clear(r.Context())
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleAPIList handles GET /api/ideas.
func (h *Handlers) HandleAPIList(w http.ResponseWriter, r *http.Request) {
	result, err := h.repo.ListWithCount(r.Context())
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}
