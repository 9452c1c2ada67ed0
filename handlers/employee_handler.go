// handlers/employee_handler.go
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

func ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := employeeStore.List(r.Context())
	if err != nil {
		respondServiceError(w, err, "employee")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, employees)
}

type CreateEmployeeRequest struct {
	EmployeeID       string   `json:"employeeId"`
	EmployeeName     string   `json:"employeeName"`
	Department       string   `json:"department,omitempty"`
	Location         string   `json:"location,omitempty"`
	Role             []string `json:"role,omitempty"`
	AssignedDevices  []string `json:"assignedDevices,omitempty"`
	AssignedLicenses []string `json:"assignedLicenses,omitempty"`
}

func CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if req.EmployeeID == "" || req.EmployeeName == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing required fields: employeeId and employeeName")
		return
	}

	created, err := assignments.CreateEmployee(r.Context(), models.Employee{
		EmployeeID:       req.EmployeeID,
		EmployeeName:     req.EmployeeName,
		Department:       req.Department,
		Location:         req.Location,
		Role:             req.Role,
		AssignedDevices:  req.AssignedDevices,
		AssignedLicenses: req.AssignedLicenses,
	})
	if err != nil {
		respondServiceError(w, err, "employee")
		return
	}

	recordAudit(r, "employee_create", "employee", created.EmployeeID, bson.M{
		"employeeName":     created.EmployeeName,
		"assignedDevices":  created.AssignedDevices,
		"assignedLicenses": created.AssignedLicenses,
	})

	utils.RespondWithJSON(w, http.StatusCreated, created)
}

func GetEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := mux.Vars(r)["id"]
	if employeeID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "employee id required")
		return
	}

	emp, err := employeeStore.Get(r.Context(), employeeID)
	if err != nil {
		respondServiceError(w, err, "employee")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, emp)
}

type UpdateEmployeeRequest struct {
	EmployeeName     *string   `json:"employeeName"`
	Department       *string   `json:"department"`
	Location         *string   `json:"location"`
	Role             *[]string `json:"role"`
	AssignedDevices  *[]string `json:"assignedDevices"`
	AssignedLicenses *[]string `json:"assignedLicenses"`
}

// UpdateEmployee applies a partial update. assignedDevices/assignedLicenses,
// when present, are the complete replacement lists; the consistency manager
// reconciles the device/license side from the delta.
func UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := mux.Vars(r)["id"]
	if employeeID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "employee id required")
		return
	}

	var req UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	updated, err := assignments.UpdateEmployee(r.Context(), employeeID, assignment.EmployeeUpdate{
		EmployeeName:     req.EmployeeName,
		Department:       req.Department,
		Location:         req.Location,
		Role:             req.Role,
		AssignedDevices:  req.AssignedDevices,
		AssignedLicenses: req.AssignedLicenses,
	})
	if err != nil {
		respondServiceError(w, err, "employee")
		return
	}

	recordAudit(r, "employee_update", "employee", employeeID, bson.M{
		"assignedDevices":  updated.AssignedDevices,
		"assignedLicenses": updated.AssignedLicenses,
	})

	utils.RespondWithJSON(w, http.StatusOK, updated)
}

func DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := mux.Vars(r)["id"]
	if employeeID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "employee id required")
		return
	}

	deleted, err := assignments.DeleteEmployee(r.Context(), employeeID)
	if err != nil {
		respondServiceError(w, err, "employee")
		return
	}

	recordAudit(r, "employee_delete", "employee", employeeID, bson.M{
		"employeeName": deleted.EmployeeName,
	})

	utils.RespondWithJSON(w, http.StatusOK, deleted)
}

// GetEmployeeDevices lists the devices currently pointing at the employee.
func GetEmployeeDevices(w http.ResponseWriter, r *http.Request) {
	employeeID := mux.Vars(r)["id"]

	if _, err := employeeStore.Get(r.Context(), employeeID); err != nil {
		respondServiceError(w, err, "employee")
		return
	}

	devices, err := deviceStore.ListByAssignee(r.Context(), employeeID)
	if err != nil {
		respondServiceError(w, err, "device")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, devices)
}

// GetEmployeeLicenses lists the licenses currently pointing at the employee.
func GetEmployeeLicenses(w http.ResponseWriter, r *http.Request) {
	employeeID := mux.Vars(r)["id"]

	if _, err := employeeStore.Get(r.Context(), employeeID); err != nil {
		respondServiceError(w, err, "employee")
		return
	}

	licenses, err := licenseStore.ListByAssignee(r.Context(), employeeID)
	if err != nil {
		respondServiceError(w, err, "license")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, licenses)
}
