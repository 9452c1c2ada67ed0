// handlers/helpers.go
package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"assetdesk/assignment"
	"assetdesk/models"
	"assetdesk/store"
	"assetdesk/utils"
)

// respondServiceError maps store/assignment failures onto the JSON error
// envelope. NotFound and validation failures are the caller's problem;
// everything else is a 500.
func respondServiceError(w http.ResponseWriter, err error, entity string) {
	var verr *assignment.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, store.ErrDuplicate):
		utils.RespondWithError(w, http.StatusConflict, entity+" id already exists")
	case errors.As(err, &verr):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, verr.Error())
	default:
		log.Printf("%s operation failed: %v", entity, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database operation failed")
	}
}

func recordAudit(r *http.Request, action, entityType, entityID string, details bson.M) {
	audit := models.AuditLog{
		ID:         primitive.NewObjectID(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		CreatedAt:  time.Now().UTC(),
	}
	if userIDStr, ok := r.Context().Value("userID").(string); ok {
		if uid, err := primitive.ObjectIDFromHex(userIDStr); err == nil {
			audit.UserID = uid
		}
	}

	if auditLogCollection != nil {
		if _, err := auditLogCollection.InsertOne(r.Context(), audit); err != nil {
			log.Printf("Failed to create audit log: %v", err)
		}
	}
	BroadcastAudit(&audit)
}
