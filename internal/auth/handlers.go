package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkravets/bookcatalog/internal/entities"
)

// Controller handles the authentication HTTP endpoints.
type Controller struct {
	service *Service
}

// NewController creates a new authentication controller.
func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPayload struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type tokenResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

func payloadFor(user *entities.User) userPayload {
	return userPayload{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
	}
}

// Register creates a new account and returns a bearer token for it.
func (ac *Controller) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := ac.service.Register(req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserExists):
			c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
		case errors.Is(err, ErrUsernameRequired),
			errors.Is(err, ErrEmailInvalid),
			errors.Is(err, ErrPasswordRequired),
			errors.Is(err, ErrPasswordTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("Internal error (register): %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}

	token, err := ac.service.IssueToken(user)
	if err != nil {
		log.Printf("Internal error (issue token): %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	c.JSON(http.StatusCreated, tokenResponse{Token: token, User: payloadFor(user)})
}

// Login validates credentials and returns a bearer token.
func (ac *Controller) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := ac.service.Authenticate(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailInvalid), errors.Is(err, ErrPasswordRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		default:
			log.Printf("Internal error (login): %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		}
		return
	}

	token, err := ac.service.IssueToken(user)
	if err != nil {
		log.Printf("Internal error (issue token): %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: token, User: payloadFor(user)})
}

// Me returns the identity carried by the presented token.
func (ac *Controller) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": userPayload{
		UserID:   GetUserID(c),
		Username: c.GetString(ContextKeyUsername),
		Email:    c.GetString(ContextKeyEmail),
		Role:     GetRole(c),
	}})
}
