package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"shopapi/internal/apperr"
	"shopapi/internal/middleware"
	"shopapi/internal/models"
	"shopapi/internal/service"
)

type addressRequest struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

func (a addressRequest) toModel() models.Address {
	return models.Address(a)
}

type registerRequest struct {
	Name     string         `json:"name" binding:"required"`
	Email    string         `json:"email" binding:"required"`
	Password string         `json:"password" binding:"required"`
	Phone    string         `json:"phone"`
	Address  addressRequest `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Register(accounts *service.Accounts, jwtSecret string, accessTTL time.Duration, development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/auth/register"

		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, route, &apperr.ValidationError{Field: "body", Message: "invalid request body"}, development)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := accounts.Register(ctx, service.RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Phone:    req.Phone,
			Address:  req.Address.toModel(),
		})
		if err != nil {
			respondError(c, route, err, development)
			return
		}

		token, err := issueToken(user, jwtSecret, accessTTL)
		if err != nil {
			respondError(c, route, &apperr.StoreError{Op: "auth.token", Err: err}, development)
			return
		}

		respondData(c, http.StatusCreated, "User registered successfully", gin.H{
			"user":        user,
			"accessToken": token,
		})
	}
}

func Login(accounts *service.Accounts, jwtSecret string, accessTTL time.Duration, development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/auth/login"

		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, route, &apperr.ValidationError{Field: "body", Message: "email and password are required"}, development)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := accounts.Authenticate(ctx, req.Email, req.Password)
		if err != nil {
			respondError(c, route, err, development)
			return
		}

		token, err := issueToken(user, jwtSecret, accessTTL)
		if err != nil {
			respondError(c, route, &apperr.StoreError{Op: "auth.token", Err: err}, development)
			return
		}

		respondData(c, http.StatusOK, "Login successful", gin.H{
			"user":        user,
			"accessToken": token,
			"expiresIn":   int64(accessTTL.Seconds()),
		})
	}
}

func GetMe(accounts *service.Accounts, development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/auth/me"

		au, ok := middleware.CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope{Success: false, Message: "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := accounts.GetByID(ctx, au.ID)
		if err != nil {
			respondError(c, route, err, development)
			return
		}

		respondData(c, http.StatusOK, "", user)
	}
}

func issueToken(user *models.User, secret string, accessTTL time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.Hex(),
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(accessTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
