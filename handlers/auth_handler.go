// handlers/auth_handler.go
package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"assetdesk/models"
	"assetdesk/utils"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

func Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing required fields: name, email and password")
		return
	}
	if len(req.Password) < 8 {
		utils.RespondWithError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}
	if req.Role == "" {
		req.Role = "viewer"
	}
	if req.Role != "admin" && req.Role != "viewer" {
		utils.RespondWithError(w, http.StatusBadRequest, "role must be admin or viewer")
		return
	}

	count, err := userCollection.CountDocuments(r.Context(), bson.M{"email": req.Email})
	if err != nil {
		log.Printf("email unique check error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database error")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "email already registered")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "password processing failed")
		return
	}

	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := userCollection.InsertOne(r.Context(), user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "email already registered")
			return
		}
		log.Printf("user insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, user)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "email and password required")
		return
	}

	var user models.User
	err := userCollection.FindOne(r.Context(), bson.M{"email": req.Email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		log.Printf("login lookup error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database error")
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		utils.RespondWithError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Name, user.Role)
	if err != nil {
		log.Printf("token generation error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// GetCurrentUser returns the authenticated user loaded by the auth middleware.
func GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userIDStr, ok := r.Context().Value("userID").(string)
	if !ok || userIDStr == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "user id required")
		return
	}

	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var user models.User
	err = userCollection.FindOne(r.Context(), bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "user not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "database error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, user)
}
