package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/poolmvp/usersvc/internal/application"
	repo "github.com/poolmvp/usersvc/internal/domain/repository"
	"github.com/poolmvp/usersvc/pkg/response"
	"github.com/poolmvp/usersvc/pkg/validation"
)

type UserHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=100"`
	Email string `json:"email" binding:"required,email,max=100"`
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		h.storageError(c, "list users", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "invalid user id", map[string]string{"id": "must be an integer"})
		return
	}

	u, err := h.Svc.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.storageError(c, "get user", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.CreateUser(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			response.Error(c, http.StatusConflict, "email already registered", nil)
			return
		}
		h.storageError(c, "create user", err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// storageError logs the cause and returns an opaque 500; internal error
// text never reaches the client.
func (h *UserHandler) storageError(c *gin.Context, op string, err error) {
	msg := "storage error"
	if errors.Is(err, context.DeadlineExceeded) {
		msg = "storage timeout"
	}
	h.Logger.WithFields(logrus.Fields{
		"op":         op,
		"error":      err.Error(),
		"request_id": c.GetString("request_id"),
	}).Error("storage operation failed")
	response.Error(c, http.StatusInternalServerError, msg, nil)
}
