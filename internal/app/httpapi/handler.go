// Package httpapi exposes the REST dispatcher. It maps HTTP verbs and paths
// onto service operations and service outcomes onto status codes; all
// decision logic lives in the service packages.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	app "microblog/internal/app"
	"microblog/internal/app/domain/account"
	"microblog/internal/app/domain/message"
	"microblog/internal/app/metrics"
	"microblog/internal/app/services/accounts"
	"microblog/internal/app/services/messages"
)

// handler bundles HTTP endpoints for the application services.
type handler struct {
	app *app.Application
}

// NewHandler returns a router exposing the REST API.
//
// A quirk preserved from the original API: a direct lookup or delete of an
// absent message answers 200 with an empty body rather than 404.
func NewHandler(application *app.Application) http.Handler {
	h := &handler{app: application}

	r := mux.NewRouter()
	r.HandleFunc("/register", h.register).Methods(http.MethodPost)
	r.HandleFunc("/login", h.login).Methods(http.MethodPost)
	r.HandleFunc("/messages", h.listMessages).Methods(http.MethodGet)
	r.HandleFunc("/messages", h.createMessage).Methods(http.MethodPost)
	r.HandleFunc("/messages/{message_id}", h.getMessage).Methods(http.MethodGet)
	r.HandleFunc("/messages/{message_id}", h.updateMessage).Methods(http.MethodPatch)
	r.HandleFunc("/messages/{message_id}", h.deleteMessage).Methods(http.MethodDelete)
	r.HandleFunc("/accounts/{account_id}/messages", h.listAccountMessages).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	return r
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var candidate account.Account
	if err := decodeJSON(r.Body, &candidate); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	// Conflict detection is the dispatcher's job; Register itself does not
	// re-check. The store's unique index backstops a pre-check race.
	exists, err := h.app.Accounts.ExistsByUsername(r.Context(), candidate.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if exists {
		w.WriteHeader(http.StatusConflict)
		return
	}

	registered, err := h.app.Accounts.Register(r.Context(), candidate)
	if err != nil {
		if errors.Is(err, accounts.ErrInvalidRegistration) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	metrics.RecordAccountRegistered()
	writeJSON(w, http.StatusOK, registered)
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var candidate account.Account
	if err := decodeJSON(r.Body, &candidate); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	authenticated, err := h.app.Accounts.Authenticate(r.Context(), candidate)
	if err != nil {
		if errors.Is(err, accounts.ErrUnauthenticated) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, authenticated)
}

func (h *handler) listMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.app.Messages.ListAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (h *handler) createMessage(w http.ResponseWriter, r *http.Request) {
	var msg message.Message
	if err := decodeJSON(r.Body, &msg); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	created, err := h.app.Messages.Create(r.Context(), msg)
	if err != nil {
		if errors.Is(err, messages.ErrInvalidMessage) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	metrics.RecordMessageCreated()
	writeJSON(w, http.StatusOK, created)
}

func (h *handler) getMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "message_id")
	if !ok {
		return
	}

	msg, found, err := h.app.Messages.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !found {
		w.WriteHeader(http.StatusOK)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (h *handler) updateMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "message_id")
	if !ok {
		return
	}

	var patch struct {
		MessageText string `json:"messageText"`
	}
	if err := decodeJSON(r.Body, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.app.Messages.Update(r.Context(), id, patch.MessageText); err != nil {
		if errors.Is(err, messages.ErrInvalidMessage) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, 1)
}

func (h *handler) deleteMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "message_id")
	if !ok {
		return
	}

	deleted, err := h.app.Messages.DeleteByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !deleted {
		w.WriteHeader(http.StatusOK)
		return
	}
	metrics.RecordMessageDeleted()
	writeJSON(w, http.StatusOK, 1)
}

func (h *handler) listAccountMessages(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "account_id")
	if !ok {
		return
	}

	msgs, err := h.app.Messages.ListByAccount(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pathID extracts a numeric path variable, answering 400 on garbage.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return 0, false
	}
	return id, true
}

func decodeJSON(body io.ReadCloser, dst interface{}) error {
	defer body.Close()
	return json.NewDecoder(body).Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
