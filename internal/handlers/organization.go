package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"orgauth/internal/middleware"
	"orgauth/internal/models"
	"orgauth/internal/store"
)

// ListOrganisations returns the organisations the caller belongs to.
func (h *Handler) ListOrganisations(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r)
	if !ok {
		SendError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	orgs, err := h.store.ListOrganisationsForUser(r.Context(), identity.UserID)
	if err != nil {
		h.log.WithError(err).WithField("user_id", identity.UserID).Error("listing organisations")
		SendError(w, http.StatusBadRequest, "Unable to fetch organisations")
		return
	}
	if orgs == nil {
		orgs = []models.Organisation{}
	}

	SendSuccess(w, http.StatusOK, "Organisations fetched successfully", map[string]interface{}{
		"organisations": orgs,
	})
}

func (h *Handler) GetOrganisation(w http.ResponseWriter, r *http.Request) {
	orgID := mux.Vars(r)["orgId"]

	org, err := h.store.FindOrganisationByID(r.Context(), orgID)
	if errors.Is(err, store.ErrNotFound) {
		SendError(w, http.StatusNotFound, "Organisation not found")
		return
	}
	if err != nil {
		h.log.WithError(err).WithField("org_id", orgID).Error("fetching organisation")
		SendError(w, http.StatusBadRequest, "Unable to fetch organisation")
		return
	}

	SendSuccess(w, http.StatusOK, "Organisation fetched successfully", org)
}

// CreateOrganisation creates a standalone organisation. The caller is not added as a member.
func (h *Handler) CreateOrganisation(w http.ResponseWriter, r *http.Request) {
	var req CreateOrganisationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		SendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if err := req.Validate(); err != nil {
		h.sendValidationErrors(w, err, createOrganisationFields)
		return
	}

	org := &models.Organisation{
		ID:          h.newID(),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.store.CreateOrganisation(r.Context(), org); err != nil {
		h.log.WithError(err).Error("creating organisation")
		SendError(w, http.StatusBadRequest, "Client error")
		return
	}

	SendSuccess(w, http.StatusCreated, "Organisation created successfully", org)
}
