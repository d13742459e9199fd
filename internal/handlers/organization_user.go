package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"orgauth/internal/models"
	"orgauth/internal/store"
)

func (h *Handler) AddOrganisationUser(w http.ResponseWriter, r *http.Request) {
	orgID := mux.Vars(r)["orgId"]

	var req AddOrganisationUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		SendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		h.sendValidationErrors(w, err, addOrganisationUserFields)
		return
	}

	ctx := r.Context()
	if _, err := h.store.FindOrganisationByID(ctx, orgID); err != nil {
		h.sendLookupError(w, err, "Organisation not found")
		return
	}
	if _, err := h.store.FindUserByID(ctx, req.UserID); err != nil {
		h.sendLookupError(w, err, "User not found")
		return
	}

	if err := h.store.AddMembership(ctx, req.UserID, orgID); err != nil {
		h.sendLookupError(w, err, "User or organisation not found")
		return
	}

	h.log.WithFields(logrus.Fields{"user_id": req.UserID, "org_id": orgID}).Info("membership added")
	SendSuccessNoData(w, http.StatusOK, "User added to organisation successfully")
}

// ListOrganisationUsers returns the members of an organisation.
func (h *Handler) ListOrganisationUsers(w http.ResponseWriter, r *http.Request) {
	orgID := mux.Vars(r)["orgId"]

	ctx := r.Context()
	if _, err := h.store.FindOrganisationByID(ctx, orgID); err != nil {
		h.sendLookupError(w, err, "Organisation not found")
		return
	}

	users, err := h.store.ListUsersForOrganisation(ctx, orgID)
	if err != nil {
		h.log.WithError(err).WithField("org_id", orgID).Error("listing organisation members")
		SendError(w, http.StatusBadRequest, "Unable to fetch organisation members")
		return
	}
	if users == nil {
		users = []models.User{}
	}

	SendSuccess(w, http.StatusOK, "Organisation members fetched successfully", map[string]interface{}{
		"users": users,
	})
}

func (h *Handler) sendLookupError(w http.ResponseWriter, err error, notFound string) {
	if errors.Is(err, store.ErrNotFound) {
		SendError(w, http.StatusNotFound, notFound)
		return
	}
	h.log.WithError(err).Error("store lookup")
	SendError(w, http.StatusBadRequest, "Client error")
}
