package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formalise/pkg/form"
	"github.com/goliatone/go-formalise/pkg/model"
	"github.com/goliatone/go-formalise/pkg/render"
	"github.com/goliatone/go-formalise/pkg/renderers/vanilla"
	"github.com/goliatone/go-formalise/pkg/submission"
	"github.com/goliatone/go-formalise/pkg/validation"
)

const source = "http"

type fieldErrorer interface {
	FieldErrors() map[string][]string
}

// receipt is the response to a stored submission.
type receipt struct {
	ID        string    `json:"id"`
	Form      string    `json:"form"`
	CreatedAt time.Time `json:"createdAt"`
}

// gateRejection is the response to an API submission a continue gate refuses.
type gateRejection struct {
	Form    string `json:"form"`
	Page    int    `json:"page"`
	Message string `json:"message"`
}

func receiptFrom(s *submission.Submission) receipt {
	return receipt{ID: s.ID, Form: s.FormID, CreatedAt: s.CreatedAt}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(s.openapi)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	snapshot := s.site.Snapshot()
	entries := make([]vanilla.IndexEntry, 0, len(s.order))
	for _, id := range s.order {
		def := s.forms[id]
		entries = append(entries, vanilla.IndexEntry{Title: def.Title, Description: def.Description, URL: examplePath(id)})
	}

	out, err := s.renderer.RenderIndex(r.Context(), "Examples", entries, render.RenderOptions{
		Theme:  snapshot.Theme,
		Chrome: snapshot.Config.Chrome("", "index", s.nav(""), s.now()),
	})
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "could not render index", err)
		return
	}
	writeBody(w, http.StatusOK, s.renderer.ContentType(), out)
}

func (s *Server) handleExample(w http.ResponseWriter, r *http.Request) {
	def, ok := s.lookup(w, r)
	if !ok {
		return
	}
	ctrl, err := form.New(def, form.WithClock(s.now))
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "could not load example", err)
		return
	}
	s.renderPage(w, r, def, ctrl.Context(), http.StatusOK)
}

func (s *Server) handleExamplePost(w http.ResponseWriter, r *http.Request) {
	def, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "could not parse form", err)
		return
	}
	p, err := decodePost(def, r.PostForm)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "malformed form post", err)
		return
	}

	var saved *submission.Submission
	ctrl, err := form.New(def,
		form.WithClock(s.now),
		form.WithValidator(s.validator),
		form.WithSubmit(s.recorder.SubmitFunc(def, func(sub *submission.Submission) { saved = sub })),
	)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "could not load example", err)
		return
	}
	if err := ctrl.Restore(p.Page, p.Values); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "malformed form post", err)
		return
	}
	if err := applyChanges(ctrl, p); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "malformed form post", err)
		return
	}

	status, err := s.dispatch(r.Context(), ctrl, p.Action)
	if err != nil {
		s.writeError(w, r, status, http.StatusText(status), err)
		return
	}
	if saved != nil {
		s.logger.WithCtxValues(r.Context()).Infof("Stored submission %s for form %s", saved.ID, def.ID)
		writeJSON(w, http.StatusCreated, receiptFrom(saved))
		return
	}
	s.renderPage(w, r, def, ctrl.Context(), status)
}

// dispatch runs the posted action and returns the status of the response.
// A non-nil error means the request failed.
func (s *Server) dispatch(ctx context.Context, ctrl *form.Controller, action string) (int, error) {
	kind, arg, _ := strings.Cut(action, ":")
	switch kind {
	case "", actionChange:
		return http.StatusOK, nil
	case actionButton:
		index, err := strconv.Atoi(arg)
		if err != nil {
			return http.StatusBadRequest, errMalformed
		}
		_, err = ctrl.Handle(ctx, index, source)
		var fe fieldErrorer
		switch {
		case err == nil:
			return http.StatusOK, nil
		case errors.As(err, &fe), errors.Is(err, form.ErrGateRejected):
			return http.StatusUnprocessableEntity, nil
		case errors.Is(err, form.ErrUnknownButton):
			return http.StatusBadRequest, err
		default:
			return http.StatusInternalServerError, err
		}
	case actionDelete:
		name, index, err := parseDelete(arg)
		if err != nil {
			return http.StatusBadRequest, err
		}
		if err := ctrl.Delete(name, index); err != nil {
			return http.StatusBadRequest, err
		}
		return http.StatusOK, nil
	default:
		return http.StatusBadRequest, errMalformed
	}
}

// handleSubmissionAPI accepts a JSON payload matching the form's schema.
func (s *Server) handleSubmissionAPI(w http.ResponseWriter, r *http.Request) {
	def, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var body model.Values
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&body); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	values := model.Values{}
	for key, value := range body {
		if _, ok := def.Field(key); ok {
			values[key] = value
		}
	}

	if page, gate, blocked := def.BlockedGate(values, len(def.Pages)); blocked {
		writeJSON(w, http.StatusUnprocessableEntity, gateRejection{Form: def.ID, Page: page, Message: gate.Message})
		return
	}
	if err := s.validator.Validate(def.ID, values); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, verr)
			return
		}
		s.writeError(w, r, http.StatusInternalServerError, "could not validate submission", err)
		return
	}
	saved, err := s.recorder.Record(r.Context(), def, values)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "could not store submission", err)
		return
	}
	writeJSON(w, http.StatusCreated, receiptFrom(saved))
}

func (s *Server) handleSubmission(w http.ResponseWriter, r *http.Request) {
	sub, err := s.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, submission.ErrNotFound) {
			s.writeError(w, r, http.StatusNotFound, "submission not found", err)
			return
		}
		s.writeError(w, r, http.StatusInternalServerError, "could not load submission", err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (model.Form, bool) {
	def, ok := s.forms[r.PathValue("id")]
	if !ok {
		s.writeError(w, r, http.StatusNotFound, "unknown example", nil)
		return model.Form{}, false
	}
	return def, true
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, def model.Form, page form.PageContext, status int) {
	snapshot := s.site.Snapshot()
	out, err := s.renderer.Render(r.Context(), def, page, render.RenderOptions{
		Action: examplePath(def.ID),
		Theme:  snapshot.Theme,
		Chrome: snapshot.Config.Chrome(def.Title, "examples/"+def.ID, s.nav(def.ID), s.now()),
	})
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "could not render page", err)
		return
	}
	writeBody(w, status, s.renderer.ContentType(), out)
}

func (s *Server) nav(active string) []render.Link {
	links := make([]render.Link, 0, len(s.order))
	for _, id := range s.order {
		links = append(links, render.Link{Label: s.forms[id].Title, URL: examplePath(id), Active: id == active})
	}
	return links
}

func examplePath(id string) string {
	return "/examples/" + id
}
