package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/studymate/backend/internal/database"
	"github.com/studymate/backend/internal/middleware"
	"github.com/studymate/backend/internal/models"
)

const usernameAttempts = 5

type Handler struct {
	store    UserStore
	tokens   *Tokens
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandler(store UserStore, tokens *Tokens, logger *slog.Logger) *Handler {
	return &Handler{
		store:    store,
		tokens:   tokens,
		validate: validator.New(),
		logger:   logger.With("component", "auth"),
	}
}

func (h *Handler) RegisterRoutes(public, protected *mux.Router) {
	public.HandleFunc("/auth/register", h.Register).Methods("POST")
	public.HandleFunc("/auth/login", h.Login).Methods("POST")
	protected.HandleFunc("/auth/me", h.GetCurrentUser).Methods("GET")
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse(registerMessage(err)))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "hash password", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Internal server error"))
		return
	}

	user := models.User{Email: req.Email, Name: req.Name, Password: string(hashedPassword)}

	// Usernames carry a random suffix; regenerate on collision.
	for attempt := 0; attempt < usernameAttempts; attempt++ {
		user.Username = database.GenerateUsername(req.Name)
		err = h.store.CreateUser(r.Context(), &user)
		if !errors.Is(err, ErrUsernameTaken) {
			break
		}
	}

	switch {
	case errors.Is(err, ErrEmailTaken):
		writeJSON(w, http.StatusConflict, models.NewErrorResponse("An account with this email already exists"))
		return
	case err != nil:
		h.logger.ErrorContext(r.Context(), "create user", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create account"))
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "issue token", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to generate token"))
		return
	}

	h.logger.InfoContext(r.Context(), "user registered", "user_id", user.ID, "username", user.Username)
	writeJSON(w, http.StatusCreated, models.AuthResponse{Token: token, User: user})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Email and password are required"))
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if errors.Is(err, ErrUserNotFound) {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid email or password"))
		return
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "load user", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Internal server error"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid email or password"))
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "issue token", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to generate token"))
		return
	}

	writeJSON(w, http.StatusOK, models.AuthResponse{Token: token, User: *user})
}

func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Authentication required"))
		return
	}

	user, err := h.store.GetUserByID(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("User not found"))
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func registerMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch fe := verrs[0]; {
		case fe.Field() == "Email" && fe.Tag() == "email":
			return "Email address is invalid"
		case fe.Field() == "Password" && fe.Tag() == "min":
			return "Password must be at least 8 characters"
		}
	}
	return "Email, name, and password are required"
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
