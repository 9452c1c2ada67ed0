// handlers/audit_handler.go
package handlers

import (
	"log"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"assetdesk/models"
	"assetdesk/utils"
)

// ListAuditLogs returns recent audit entries, newest first. Supports
// optional entityType and limit query parameters.
func ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if entityType := r.URL.Query().Get("entityType"); entityType != "" {
		filter["entityType"] = entityType
	}

	limit := int64(100)
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil || parsed < 1 || parsed > 1000 {
			utils.RespondWithError(w, http.StatusBadRequest, "limit must be between 1 and 1000")
			return
		}
		limit = parsed
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := auditLogCollection.Find(r.Context(), filter, opts)
	if err != nil {
		log.Printf("audit Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	defer cursor.Close(r.Context())

	var logs []models.AuditLog
	if err := cursor.All(r.Context(), &logs); err != nil {
		log.Printf("cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to decode audit logs")
		return
	}

	if logs == nil {
		logs = []models.AuditLog{}
	}

	utils.RespondWithJSON(w, http.StatusOK, logs)
}
