package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/authd/internal/common"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	UserName string `json:"username"`
	// Accepted for compatibility with existing clients; not stored.
	ProfilPictURL string `json:"profilpictURL"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResultBody struct {
	UserName string `json:"username"`
	Name     string `json:"name"`
	Token    string `json:"token"`
}

type loginResponse struct {
	Error       bool             `json:"error"`
	Message     string           `json:"message"`
	LoginResult *loginResultBody `json:"loginResult,omitempty"`
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(msg))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// registerHandler answers in plain text. Caller-fixable problems (missing
// fields, duplicates) are 400; anything else, provider failures included,
// collapses into a detail-free 500.
func (s *HTTPServer) registerHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeText(w, http.StatusBadRequest, "Email, password, name, and username are required")
		return
	}

	_, err := s.users.Register(r.Context(), req.Email, req.Password, req.Name, req.UserName)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrValidation):
			writeText(w, http.StatusBadRequest, "Email, password, name, and username are required")
		case errors.Is(err, common.ErrEmailTaken):
			writeText(w, http.StatusBadRequest, "Email is already registered")
		case errors.Is(err, common.ErrUsernameTaken):
			writeText(w, http.StatusBadRequest, "Username is already taken")
		default:
			s.logger.Error(r.Context(), "registration failed", "error", err.Error())
			writeText(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeText(w, http.StatusCreated, "User registered successfully")
}

// loginHandler answers in JSON. Unknown email and wrong password produce the
// same message so callers cannot probe for account existence.
func (s *HTTPServer) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, loginResponse{Error: true, Message: "Email and password are required"})
		return
	}

	result, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrValidation):
			writeJSON(w, http.StatusBadRequest, loginResponse{Error: true, Message: "Email and password are required"})
		case errors.Is(err, common.ErrInvalidCredentials):
			writeJSON(w, http.StatusBadRequest, loginResponse{Error: true, Message: "Invalid email or password"})
		default:
			s.logger.Error(r.Context(), "login failed", "error", err.Error())
			writeJSON(w, http.StatusInternalServerError, loginResponse{Error: true, Message: "Internal server error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Error:   false,
		Message: "success",
		LoginResult: &loginResultBody{
			UserName: result.UserName,
			Name:     result.Name,
			Token:    result.Token,
		},
	})
}

func (s *HTTPServer) pingHandler(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "pong")
}
