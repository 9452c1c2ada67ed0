// handlers/device_handler.go
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

func ListDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := deviceStore.List(r.Context())
	if err != nil {
		respondServiceError(w, err, "device")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, devices)
}

type CreateDeviceRequest struct {
	DeviceID   string  `json:"deviceId"`
	Model      string  `json:"model"`
	AssignedTo *string `json:"assignedTo,omitempty"`
	Status     int     `json:"status"`
	Department *string `json:"department,omitempty"`
}

// CreateDevice persists the device as given. Supplying assignedTo here does
// not add the device to the employee's list; use the employee endpoints for
// a bidirectional link.
func CreateDevice(w http.ResponseWriter, r *http.Request) {
	var req CreateDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if req.DeviceID == "" || req.Model == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing required fields: deviceId and model")
		return
	}

	created, err := assignments.CreateDevice(r.Context(), models.Device{
		DeviceID:   req.DeviceID,
		Model:      req.Model,
		AssignedTo: req.AssignedTo,
		Status:     req.Status,
		Department: req.Department,
	})
	if err != nil {
		respondServiceError(w, err, "device")
		return
	}

	recordAudit(r, "device_create", "device", created.DeviceID, bson.M{
		"model":  created.Model,
		"status": created.Status,
	})

	utils.RespondWithJSON(w, http.StatusCreated, created)
}

func GetDevice(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["id"]
	if deviceID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "device id required")
		return
	}

	dev, err := deviceStore.Get(r.Context(), deviceID)
	if err != nil {
		respondServiceError(w, err, "device")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dev)
}

type UpdateDeviceRequest struct {
	Model  *string `json:"model"`
	Status *int    `json:"status"`
	// Raw so that an explicit null (unassign) can be told apart from an
	// absent field (unchanged).
	AssignedTo json.RawMessage `json:"assignedTo"`
}

func UpdateDevice(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["id"]
	if deviceID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "device id required")
		return
	}

	var req UpdateDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	upd := assignment.DeviceUpdate{Model: req.Model, Status: req.Status}
	if len(req.AssignedTo) > 0 {
		var assignee *string
		if err := json.Unmarshal(req.AssignedTo, &assignee); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "assignedTo must be a string or null")
			return
		}
		upd.AssignedTo = &assignee
	}

	updated, err := assignments.UpdateDevice(r.Context(), deviceID, upd)
	if err != nil {
		respondServiceError(w, err, "device")
		return
	}

	recordAudit(r, "device_update", "device", deviceID, bson.M{
		"model":      updated.Model,
		"status":     updated.Status,
		"assignedTo": updated.AssignedTo,
	})

	utils.RespondWithJSON(w, http.StatusOK, updated)
}

func DeleteDevice(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["id"]
	if deviceID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "device id required")
		return
	}

	deleted, err := assignments.DeleteDevice(r.Context(), deviceID)
	if err != nil {
		respondServiceError(w, err, "device")
		return
	}

	recordAudit(r, "device_delete", "device", deviceID, bson.M{
		"model": deleted.Model,
	})

	utils.RespondWithJSON(w, http.StatusOK, deleted)
}
