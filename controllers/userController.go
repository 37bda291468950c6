package controller

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/RootDr0id/food-delivery-app-backend/helper"
	middleware "github.com/RootDr0id/food-delivery-app-backend/middlewares"
	"github.com/RootDr0id/food-delivery-app-backend/models"
	"github.com/RootDr0id/food-delivery-app-backend/storage"
)

var requestTimeout = 100 * time.Second

type UserController struct {
	users    *storage.UserStore
	validate *validator.Validate
}

func NewUserController(users *storage.UserStore) *UserController {
	return &UserController{users: users, validate: validator.New()}
}

func (c *UserController) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		helper.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if validationErr := c.validate.Struct(user); validationErr != nil {
		helper.WriteError(w, http.StatusBadRequest, validationErr.Error())
		return
	}

	exists, err := c.users.EmailExists(ctx, *user.Email)
	if err != nil {
		helper.WriteError(w, http.StatusInternalServerError, "Error checking email")
		return
	}
	if exists {
		helper.WriteError(w, http.StatusConflict, "Email already exists")
		return
	}

	password := HashPassword(*user.Password)
	user.Password = &password

	user.Created_at = time.Now()
	user.Updated_at = time.Now()
	user.ID = primitive.NewObjectID()
	user.User_id = user.ID.Hex()

	token, refreshToken, err := helper.GenerateAllTokens(*user.Email, *user.Name, user.User_id)
	if err != nil {
		helper.WriteError(w, http.StatusInternalServerError, "Error generating tokens")
		return
	}
	user.Token = &token
	user.Refresh_Token = &refreshToken

	if err := c.users.Insert(ctx, user); err != nil {
		helper.WriteError(w, http.StatusInternalServerError, "User creation failed")
		return
	}

	helper.WriteSuccess(w, http.StatusCreated, "User created successfully", userResponse(user))
}

func (c *UserController) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	var credentials struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		helper.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if validationErr := c.validate.Struct(credentials); validationErr != nil {
		helper.WriteError(w, http.StatusBadRequest, validationErr.Error())
		return
	}

	foundUser, err := c.users.FindByEmail(ctx, credentials.Email)
	if err != nil {
		helper.WriteError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	passwordIsValid, msg := VerifyPassword(credentials.Password, *foundUser.Password)
	if !passwordIsValid {
		helper.WriteError(w, http.StatusUnauthorized, msg)
		return
	}

	token, refreshToken, err := helper.GenerateAllTokens(*foundUser.Email, *foundUser.Name, foundUser.User_id)
	if err != nil {
		helper.WriteError(w, http.StatusInternalServerError, "Error generating tokens")
		return
	}
	if err := c.users.UpdateTokens(ctx, foundUser.User_id, token, refreshToken); err != nil {
		log.Printf("Failed to store tokens for user %s: %v", foundUser.User_id, err)
	}

	response := map[string]interface{}{
		"email":         *foundUser.Email,
		"name":          *foundUser.Name,
		"user_id":       foundUser.User_id,
		"token":         token,
		"refresh_token": refreshToken,
	}

	helper.WriteSuccess(w, http.StatusOK, "Login successful", response)
}

func (c *UserController) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	_, _, uid := middleware.GetUserFromContext(r)

	user, err := c.users.FindByID(ctx, uid)
	if err != nil {
		helper.WriteError(w, http.StatusNotFound, "User not found")
		return
	}

	helper.WriteSuccess(w, http.StatusOK, "User retrieved successfully", userResponse(user))
}

func (c *UserController) UpdateCurrentUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	_, _, uid := middleware.GetUserFromContext(r)

	var body struct {
		Name         *string `json:"name"`
		AddressLine1 *string `json:"addressLine1"`
		City         *string `json:"city"`
		Country      *string `json:"country"`
	}

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		helper.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updateObj := bson.D{}
	if body.Name != nil {
		updateObj = append(updateObj, bson.E{Key: "name", Value: *body.Name})
	}
	if body.AddressLine1 != nil {
		updateObj = append(updateObj, bson.E{Key: "address_line1", Value: *body.AddressLine1})
	}
	if body.City != nil {
		updateObj = append(updateObj, bson.E{Key: "city", Value: *body.City})
	}
	if body.Country != nil {
		updateObj = append(updateObj, bson.E{Key: "country", Value: *body.Country})
	}

	if len(updateObj) == 0 {
		helper.WriteError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	user, err := c.users.UpdateProfile(ctx, uid, updateObj)
	if err != nil {
		helper.WriteError(w, http.StatusInternalServerError, "User update failed")
		return
	}

	helper.WriteSuccess(w, http.StatusOK, "User updated successfully", userResponse(user))
}

// userResponse strips credentials and tokens from the user document.
func userResponse(user models.User) map[string]interface{} {
	return map[string]interface{}{
		"user_id":       user.User_id,
		"name":          user.Name,
		"email":         user.Email,
		"address_line1": user.AddressLine1,
		"city":          user.City,
		"country":       user.Country,
		"created_at":    user.Created_at,
		"updated_at":    user.Updated_at,
	}
}

func HashPassword(password string) string {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		log.Panic(err)
	}
	return string(bytes)
}

func VerifyPassword(userPassword string, providedPassword string) (bool, string) {
	if err := bcrypt.CompareHashAndPassword([]byte(providedPassword), []byte(userPassword)); err != nil {
		return false, "Incorrect password"
	}
	return true, ""
}
