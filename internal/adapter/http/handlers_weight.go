package adapthttp

import (
	"errors"
	"net/http"
	"strconv"

	"weighttracker/internal/domain"
)

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	acct := accountFromContext(r)

	day, dayErr := parseDay(r.PostFormValue("day"))
	kg, kgErr := strconv.ParseFloat(r.PostFormValue("kg"), 64)
	if dayErr != nil || kgErr != nil {
		setFlash(w, "danger", "Invalid input")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	_, err := s.weights.Upsert(r.Context(), acct.ID, day, kg)
	if errors.Is(err, domain.ErrInvalidInput) {
		setFlash(w, "danger", "Invalid input")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	setFlash(w, "success", "Saved")
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request) {
	acct := accountFromContext(r)

	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	entry, err := s.weights.Get(r.Context(), acct.ID, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.NotFound(w, r)
	case errors.Is(err, domain.ErrAccessDenied):
		setFlash(w, "danger", "Access denied")
		http.Redirect(w, r, "/", http.StatusFound)
	case err != nil:
		s.internalError(w, r, err)
	default:
		s.render(w, r, "edit.html", entry)
	}
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	acct := accountFromContext(r)

	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	day, dayErr := parseDay(r.PostFormValue("day"))
	kg, kgErr := strconv.ParseFloat(r.PostFormValue("kg"), 64)
	if dayErr != nil || kgErr != nil {
		setFlash(w, "danger", "Invalid input")
		http.Redirect(w, r, "/edit/"+strconv.FormatInt(id, 10), http.StatusFound)
		return
	}

	err := s.weights.Edit(r.Context(), acct.ID, id, day, kg)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.NotFound(w, r)
	case errors.Is(err, domain.ErrAccessDenied):
		setFlash(w, "danger", "Access denied")
		http.Redirect(w, r, "/", http.StatusFound)
	case errors.Is(err, domain.ErrConflict):
		setFlash(w, "warning", "An entry for that day already exists")
		http.Redirect(w, r, "/edit/"+strconv.FormatInt(id, 10), http.StatusFound)
	case errors.Is(err, domain.ErrInvalidInput):
		setFlash(w, "danger", "Invalid input")
		http.Redirect(w, r, "/edit/"+strconv.FormatInt(id, 10), http.StatusFound)
	case err != nil:
		s.internalError(w, r, err)
	default:
		setFlash(w, "success", "Updated")
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	acct := accountFromContext(r)

	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	// Deleting someone else's entry is a silent no-op: no flash, no error.
	deleted, err := s.weights.Delete(r.Context(), acct.ID, id)
	if errors.Is(err, domain.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	if deleted {
		setFlash(w, "info", "Deleted")
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
