package auth

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"voyago/db"
	"voyago/globals"
	"voyago/middleware"
	"voyago/models"
	"voyago/rdx"
	"voyago/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTTL     = 7 * 24 * time.Hour
	tokenHashKey = "tokki"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func registerHandler(w http.ResponseWriter, r *http.Request) {
	var input credentials
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" || len(input.Password) < 8 {
		utils.RespondWithError(w, http.StatusBadRequest, "email and a password of at least 8 characters are required")
		return
	}

	count, err := db.UserCollection.CountDocuments(r.Context(), bson.M{"email": input.Email})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "registration failed")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "an account with this email already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	now := time.Now()
	user := models.User{
		UserID:    utils.GetUUID(),
		Email:     input.Email,
		Name:      input.Name,
		Password:  string(hashed),
		Prefs:     models.DefaultPreferences(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := db.UserCollection.InsertOne(r.Context(), user); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	token, err := generateToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "registration failed")
		return
	}
	storeToken(user.UserID, token)

	user.Password = ""
	utils.SendResponse(w, http.StatusCreated, authResponse{Token: token, User: user}, "Account created", nil)
}

func loginHandler(w http.ResponseWriter, r *http.Request) {
	var input credentials
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	var user models.User
	err := db.UserCollection.FindOne(r.Context(), bson.M{"email": input.Email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "login failed")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := generateToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "login failed")
		return
	}
	storeToken(user.UserID, token)

	user.Password = ""
	utils.SendResponse(w, http.StatusOK, authResponse{Token: token, User: user}, "Logged in", nil)
}

func logoutHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ValidateJWT(r.Header.Get("Authorization"))
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	if err := rdx.RdxHdel(tokenHashKey, claims.UserID); err != nil {
		log.Printf("clearing session for %s: %v", claims.UserID, err)
	}
	utils.SendResponse(w, http.StatusOK, nil, "Logged out", nil)
}

func refreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ValidateJWT(r.Header.Get("Authorization"))
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(tokenTTL))
	claims.IssuedAt = jwt.NewNumericDate(time.Now())
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(globals.JwtSecret)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "could not refresh token")
		return
	}
	storeToken(claims.UserID, signed)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"token": signed})
}

func generateToken(user models.User) (string, error) {
	claims := &middleware.Claims{
		Username: user.Name,
		UserID:   user.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

// storeToken keeps the latest token per user for audit and logout.
func storeToken(userID, token string) {
	if err := rdx.RdxHset(tokenHashKey, userID, token); err != nil {
		log.Printf("storing session for %s: %v", userID, err)
	}
}
