// middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"assetdesk/config"
	"assetdesk/database"
	"assetdesk/models"
	"assetdesk/utils"
)

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip authentication for WebSocket upgrade requests
		if r.Header.Get("Upgrade") == "websocket" {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondWithError(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ValidateJWT(tokenString)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID format")
			return
		}

		var user models.User
		err = database.Client.Database(config.DatabaseName).Collection("users").
			FindOne(r.Context(), bson.M{"_id": userID}).Decode(&user)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "User not found")
			return
		}

		ctx := context.WithValue(r.Context(), "userID", claims.UserID)
		ctx = context.WithValue(ctx, "userName", claims.Name)
		ctx = context.WithValue(ctx, "userRole", user.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
