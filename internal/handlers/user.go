package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"orgauth/internal/store"
)

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	user, err := h.store.FindUserByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		SendError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.log.WithError(err).WithField("user_id", id).Error("fetching user")
		SendError(w, http.StatusBadRequest, "Unable to fetch user")
		return
	}

	SendSuccess(w, http.StatusOK, "User fetched successfully", user)
}
