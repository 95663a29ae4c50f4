package handlers

import (
	"encoding/json"
	"net/http"

	"max.ks1230/expense-tracker/internal/http/respond"
	"max.ks1230/expense-tracker/internal/model/apperr"
	"max.ks1230/expense-tracker/internal/model/users"
)

// UserHandler owns the /api/user routes.
type UserHandler struct {
	users *users.Service
}

func NewUserHandler(users *users.Service) *UserHandler {
	return &UserHandler{users: users}
}

// Register attaches user routes to the mux.
func (h *UserHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/user/all", h.handleList)
	mux.HandleFunc("POST /api/user", h.handleCreate)
	mux.HandleFunc("GET /api/user/id/{userId}", h.handleGetByID)
	mux.HandleFunc("GET /api/user/email/{email}", h.handleGetByEmail)
	mux.HandleFunc("PUT /api/user/id/{userId}", h.handleUpdate)
	mux.HandleFunc("DELETE /api/user/id/{userId}", h.handleDelete)
}

func (h *UserHandler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.users.List(r.Context())
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

func (h *UserHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input users.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Err(w, apperr.InvalidRequest("Invalid request payload"))
		return
	}

	created, err := h.users.Create(r.Context(), input)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}

func (h *UserHandler) handleGetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		respond.Err(w, err)
		return
	}

	u, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, u)
}

func (h *UserHandler) handleGetByEmail(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.GetByEmail(r.Context(), r.PathValue("email"))
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, u)
}

func (h *UserHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		respond.Err(w, err)
		return
	}

	var input users.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Err(w, apperr.InvalidRequest("Invalid request payload"))
		return
	}

	updated, err := h.users.UpdateByID(r.Context(), id, input)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

func (h *UserHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		respond.Err(w, err)
		return
	}

	if err := h.users.DeleteByID(r.Context(), id); err != nil {
		respond.Err(w, err)
		return
	}
	respond.Text(w, http.StatusOK, "User deleted successfully")
}
