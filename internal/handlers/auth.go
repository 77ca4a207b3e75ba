package handlers

import (
	"context"
	"errors"

	"github.com/NoteLegend/CodeKeep/internal/middleware"
	"github.com/NoteLegend/CodeKeep/internal/services"
	"github.com/NoteLegend/CodeKeep/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type AuthHandler struct {
	userService UserServiceInterface
	jwtService  *services.JWTService
}

func NewAuthHandler(userService UserServiceInterface, jwtService *services.JWTService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
	}
}

func (h *AuthHandler) Register(c *drift.Context) {
	var req dto.RegisterRequest
	if err := c.BindJSON(&req); err != nil {
		_ = c.JSON(400, dto.Error("invalid request body"))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		_ = c.JSON(400, dto.ValidationErrors(errs))
		return
	}

	ctx := context.Background()

	user, err := h.userService.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			_ = c.JSON(400, dto.Error("User already exists with this email"))
			return
		}
		_ = c.JSON(500, dto.Error("Server error"))
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		_ = c.JSON(500, dto.Error("Server error"))
		return
	}

	_ = c.JSON(201, dto.AuthResponse{Success: true, Token: token, User: user})
}

func (h *AuthHandler) Login(c *drift.Context) {
	var req dto.LoginRequest
	if err := c.BindJSON(&req); err != nil {
		_ = c.JSON(400, dto.Error("invalid request body"))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		_ = c.JSON(400, dto.ValidationErrors(errs))
		return
	}

	ctx := context.Background()

	user, err := h.userService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			_ = c.JSON(401, dto.Error("Invalid credentials"))
			return
		}
		_ = c.JSON(500, dto.Error("Server error"))
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		_ = c.JSON(500, dto.Error("Server error"))
		return
	}

	_ = c.JSON(200, dto.AuthResponse{Success: true, Token: token, User: user})
}

func (h *AuthHandler) Me(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		_ = c.JSON(401, dto.Error("Not authorized to access this route"))
		return
	}

	ctx := context.Background()

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			_ = c.JSON(404, dto.Error("User not found"))
			return
		}
		_ = c.JSON(500, dto.Error("Server error"))
		return
	}

	_ = c.JSON(200, dto.UserResponse{Success: true, User: user})
}
