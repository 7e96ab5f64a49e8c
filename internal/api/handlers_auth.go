package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"openhouse/internal/auth"
	"openhouse/internal/domain"
	"openhouse/internal/storage"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *registerRequest) validate() bool {
	return strings.TrimSpace(r.Name) != "" &&
		strings.Contains(r.Email, "@") &&
		len(r.Password) >= 6
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.validate() {
		s.respondWithError(w, http.StatusBadRequest, "Invalid data")
		return
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	user, err := s.pgStore.CreateUser(r.Context(), &domain.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hash,
	})
	if errors.Is(err, storage.ErrDuplicateEmail) {
		s.respondWithError(w, http.StatusBadRequest, "User with this email already exists")
		return
	}
	if err != nil {
		s.logger.Error("failed to create user", zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	if err := s.openSession(w, r, user.ID); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	s.respondWithJSON(w, http.StatusCreated, map[string]*domain.User{"user": user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		s.respondWithError(w, http.StatusBadRequest, "Invalid data")
		return
	}

	user, err := s.pgStore.GetUserByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, storage.ErrNotFound) {
		s.respondWithError(w, http.StatusBadRequest, "Invalid email or password")
		return
	}
	if err != nil {
		s.logger.Error("failed to look up user", zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, "Failed to login")
		return
	}

	if !s.auth.CheckPassword(user.Password, req.Password) {
		s.respondWithError(w, http.StatusBadRequest, "Invalid email or password")
		return
	}

	if err := s.openSession(w, r, user.ID); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to login")
		return
	}

	s.respondWithJSON(w, http.StatusOK, map[string]*domain.User{"user": user})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if err := s.redisStore.DeleteSession(r.Context(), cookie.Value); err != nil {
			s.logger.Error("failed to delete session", zap.Error(err))
			s.respondWithError(w, http.StatusInternalServerError, "Failed to logout")
			return
		}
	}
	s.clearSessionCookie(w)
	s.respondWithJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		s.respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	userID, err := s.redisStore.GetSession(r.Context(), cookie.Value)
	if err != nil {
		s.respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := s.pgStore.GetUserByID(r.Context(), userID)
	if err != nil {
		s.respondWithError(w, http.StatusUnauthorized, "User not found")
		return
	}

	s.respondWithJSON(w, http.StatusOK, map[string]*domain.User{"user": user})
}

// openSession creates a session token in Redis and sets its cookie.
func (s *Server) openSession(w http.ResponseWriter, r *http.Request, userID int) error {
	token := auth.NewSessionToken()
	if err := s.redisStore.SaveSession(r.Context(), token, userID, s.sessionTTL()); err != nil {
		s.logger.Error("failed to save session", zap.Error(err))
		return err
	}
	s.setSessionCookie(w, token)
	return nil
}
