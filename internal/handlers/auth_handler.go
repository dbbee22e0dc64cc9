package handlers

import (
	"errors"
	"net/http"

	"github.com/jhaanurag/multivendor-ecom-sub000/internal/models"
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/services"
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/validation"
	"github.com/jhaanurag/multivendor-ecom-sub000/pkg/response"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	auth     *services.AuthService
	validate *validatorv10.Validate
}

func NewAuthHandler(auth *services.AuthService, validate *validatorv10.Validate) *AuthHandler {
	return &AuthHandler{auth: auth, validate: validate}
}

type authPayload struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req validation.RegisterRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}
	if req.Role == "" {
		req.Role = models.RoleCustomer
	}

	user, token, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Role, req.ShopName)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, authPayload{User: user, Token: token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req validation.LoginRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// Collapse both failure modes so the endpoint does not reveal
		// which emails are registered.
		if errors.Is(err, models.ErrUserNotFound) || errors.Is(err, models.ErrInvalidPassword) {
			response.Error(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeError(c, err)
		return
	}
	response.Success(c, authPayload{User: user, Token: token})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	userID, _ := currentUser(c)
	user, err := h.auth.Profile(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, user)
}
