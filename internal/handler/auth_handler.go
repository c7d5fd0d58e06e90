package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/handlersyss/BarSystem/internal/auth"
	"github.com/handlersyss/BarSystem/pkg/jwtutil"
	"github.com/handlersyss/BarSystem/pkg/logger"
	"github.com/handlersyss/BarSystem/prometheus"
)

// AuthHandler exposes operator registration and login
type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// CredentialsRequest is the body for register and login
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Company  string `json:"company_name"`
}

// Register creates a new operator account
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromEcho(c)

	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse register request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	user, err := h.svc.Register(req.Username, req.Password, req.Company)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrBadRequest):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, auth.ErrUsernameTaken):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		default:
			log.Error("Failed to register operator", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
		}
	}

	log.Info("Operator registered",
		zap.Int("user_id", user.ID),
		zap.String("username", user.Username))
	return c.JSON(http.StatusCreated, user)
}

// Login authenticates an operator and issues a JWT
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.AuthAttemptsCounter.Inc()

	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	user, err := h.svc.Authenticate(req.Username, req.Password)
	if err != nil {
		log.Warn("Authentication failed", zap.String("username", req.Username))
		prometheus.RecordAuthError("invalid_credentials")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := jwtutil.GenerateToken(user.Username, user.ID, user.Company)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("Operator logged in", zap.String("username", user.Username))
	return c.JSON(http.StatusOK, echo.Map{"token": token, "user": user})
}
