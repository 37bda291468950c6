package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	controller "github.com/RootDr0id/food-delivery-app-backend/controllers"
)

func UserPublicRoutes(router *mux.Router, users *controller.UserController) {
	router.HandleFunc("/users/signup", users.SignUp).Methods(http.MethodPost)
	router.HandleFunc("/users/login", users.Login).Methods(http.MethodPost)
}

func UserProtectedRoutes(router *mux.Router, users *controller.UserController) {
	router.HandleFunc("/users/me", users.GetCurrentUser).Methods(http.MethodGet)
	router.HandleFunc("/users/me", users.UpdateCurrentUser).Methods(http.MethodPatch)
}
