// handlers/license_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"assetdesk/assignment"
	"assetdesk/models"
	"assetdesk/utils"
)

func ListLicenses(w http.ResponseWriter, r *http.Request) {
	licenses, err := licenseStore.List(r.Context())
	if err != nil {
		respondServiceError(w, err, "license")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, licenses)
}

type CreateLicenseRequest struct {
	LicenseID   string  `json:"licenseId"`
	LicenseName string  `json:"licenseName"`
	Type        string  `json:"type"`
	AssignedTo  *string `json:"assignedTo,omitempty"`
	Status      int     `json:"status"`
	Department  *string `json:"department,omitempty"`
	Description string  `json:"description,omitempty"`
}

// CreateLicense persists the license as given; same one-directional
// assignedTo behavior as CreateDevice.
func CreateLicense(w http.ResponseWriter, r *http.Request) {
	var req CreateLicenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if req.LicenseID == "" || req.LicenseName == "" || req.Type == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing required fields: licenseId, licenseName and type")
		return
	}

	created, err := assignments.CreateLicense(r.Context(), models.License{
		LicenseID:   req.LicenseID,
		LicenseName: req.LicenseName,
		Type:        req.Type,
		AssignedTo:  req.AssignedTo,
		Status:      req.Status,
		Department:  req.Department,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(w, err, "license")
		return
	}

	recordAudit(r, "license_create", "license", created.LicenseID, bson.M{
		"licenseName": created.LicenseName,
		"type":        created.Type,
	})

	utils.RespondWithJSON(w, http.StatusCreated, created)
}

func GetLicense(w http.ResponseWriter, r *http.Request) {
	licenseID := mux.Vars(r)["id"]
	if licenseID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "license id required")
		return
	}

	lic, err := licenseStore.Get(r.Context(), licenseID)
	if err != nil {
		respondServiceError(w, err, "license")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, lic)
}

type UpdateLicenseRequest struct {
	LicenseName *string         `json:"licenseName"`
	Type        *string         `json:"type"`
	Status      *int            `json:"status"`
	Description *string         `json:"description"`
	AssignedTo  json.RawMessage `json:"assignedTo"`
}

func UpdateLicense(w http.ResponseWriter, r *http.Request) {
	licenseID := mux.Vars(r)["id"]
	if licenseID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "license id required")
		return
	}

	var req UpdateLicenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	upd := assignment.LicenseUpdate{
		LicenseName: req.LicenseName,
		Type:        req.Type,
		Status:      req.Status,
		Description: req.Description,
	}
	if len(req.AssignedTo) > 0 {
		var assignee *string
		if err := json.Unmarshal(req.AssignedTo, &assignee); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "assignedTo must be a string or null")
			return
		}
		upd.AssignedTo = &assignee
	}

	updated, err := assignments.UpdateLicense(r.Context(), licenseID, upd)
	if err != nil {
		respondServiceError(w, err, "license")
		return
	}

	recordAudit(r, "license_update", "license", licenseID, bson.M{
		"licenseName": updated.LicenseName,
		"status":      updated.Status,
		"assignedTo":  updated.AssignedTo,
	})

	utils.RespondWithJSON(w, http.StatusOK, updated)
}

func DeleteLicense(w http.ResponseWriter, r *http.Request) {
	licenseID := mux.Vars(r)["id"]
	if licenseID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "license id required")
		return
	}

	deleted, err := assignments.DeleteLicense(r.Context(), licenseID)
	if err != nil {
		respondServiceError(w, err, "license")
		return
	}

	recordAudit(r, "license_delete", "license", licenseID, bson.M{
		"licenseName": deleted.LicenseName,
	})

	utils.RespondWithJSON(w, http.StatusOK, deleted)
}
