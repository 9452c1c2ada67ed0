// handlers/dashboard_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"assetdesk/models"
	"assetdesk/utils"
)

type DashboardSummary struct {
	Employees         int64            `json:"employees"`
	Devices           int64            `json:"devices"`
	Licenses          int64            `json:"licenses"`
	DevicesByStatus   map[string]int64 `json:"devicesByStatus"`
	LicensesByStatus  map[string]int64 `json:"licensesByStatus"`
	DevicesByDept     map[string]int64 `json:"devicesByDepartment"`
	UnassignedDevices int64            `json:"unassignedDevices"`
}

// GetDashboardSummary aggregates headline counts for the admin landing page.
func GetDashboardSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	summary := DashboardSummary{
		DevicesByStatus:  make(map[string]int64),
		LicensesByStatus: make(map[string]int64),
		DevicesByDept:    make(map[string]int64),
	}

	var err error
	if summary.Employees, err = employeeCollection.CountDocuments(ctx, bson.M{}); err != nil {
		log.Printf("employee count error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database error")
		return
	}
	if summary.Devices, err = deviceCollection.CountDocuments(ctx, bson.M{}); err != nil {
		log.Printf("device count error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database error")
		return
	}
	if summary.Licenses, err = licenseCollection.CountDocuments(ctx, bson.M{}); err != nil {
		log.Printf("license count error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database error")
		return
	}
	if summary.UnassignedDevices, err = deviceCollection.CountDocuments(ctx, bson.M{"assignedTo": nil}); err != nil {
		log.Printf("unassigned device count error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database error")
		return
	}

	deviceStatusNames := map[int]string{
		models.DeviceAvailable:        "available",
		models.DeviceInUse:            "inUse",
		models.DeviceUnderMaintenance: "underMaintenance",
	}
	for status, name := range deviceStatusNames {
		count, err := deviceCollection.CountDocuments(ctx, bson.M{"status": status})
		if err != nil {
			log.Printf("device status count error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "database error")
			return
		}
		summary.DevicesByStatus[name] = count
	}

	licenseStatusNames := map[int]string{
		models.LicenseAvailable: "available",
		models.LicenseInUse:     "inUse",
		models.LicenseExpired:   "expired",
	}
	for status, name := range licenseStatusNames {
		count, err := licenseCollection.CountDocuments(ctx, bson.M{"status": status})
		if err != nil {
			log.Printf("license status count error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "database error")
			return
		}
		summary.LicensesByStatus[name] = count
	}

	// Devices grouped by the denormalized department copy
	pipeline := []bson.M{
		{"$match": bson.M{"department": bson.M{"$ne": nil}}},
		{"$group": bson.M{"_id": "$department", "count": bson.M{"$sum": 1}}},
	}
	cursor, err := deviceCollection.Aggregate(ctx, pipeline)
	if err != nil {
		log.Printf("department aggregation error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database error")
		return
	}
	defer cursor.Close(ctx)

	var groups []struct {
		Department string `bson:"_id"`
		Count      int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		log.Printf("department aggregation decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database error")
		return
	}
	for _, group := range groups {
		summary.DevicesByDept[group.Department] = group.Count
	}

	utils.RespondWithJSON(w, http.StatusOK, summary)
}
