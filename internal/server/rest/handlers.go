package rest

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/accountkeeper/internal/server/models"
	"github.com/dmitrijs2005/accountkeeper/internal/server/services"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

type signupRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DateOfBirth string `json:"dateOfBirth"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type notificationSettingsRequest struct {
	NotificationSettings models.NotificationSettingsPatch `json:"notificationSettings"`
}

type preferenceSettingsRequest struct {
	PreferenceSettings models.PreferenceSettingsPatch `json:"preferenceSettings"`
}

type authData struct {
	Token string                `json:"token"`
	User  *models.PublicAccount `json:"user"`
}

// decode reads a JSON body into dst and answers 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.logger.Debug(r.Context(), "undecodable body", "error", err)
		s.fail(w, r, http.StatusBadRequest, msgBadBody)
		return false
	}
	return true
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !s.decode(w, r, &req) {
		return
	}

	res, err := s.accounts.Signup(r.Context(), services.SignupInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		s.failWith(w, r, err)
		return
	}

	s.success(w, r, "Signup was successful!", authData{Token: res.Token, User: res.Account})
}

func (s *Server) signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if !s.decode(w, r, &req) {
		return
	}

	res, err := s.accounts.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		s.failWith(w, r, err)
		return
	}

	s.success(w, r, "Signin successful!", authData{Token: res.Token, User: res.Account})
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.accounts.GetProfile(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		s.failWith(w, r, err)
		return
	}
	s.success(w, r, "User profile fetched!", p)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var patch models.ProfilePatch
	if !s.decode(w, r, &patch) {
		return
	}

	p, err := s.accounts.UpdateProfile(r.Context(), chi.URLParam(r, "userId"), patch)
	if err != nil {
		s.failWith(w, r, err)
		return
	}
	s.success(w, r, "User profile updated!", p)
}

func (s *Server) deleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.accounts.DeleteAccount(r.Context(), chi.URLParam(r, "userId")); err != nil {
		s.failWith(w, r, err)
		return
	}
	s.success(w, r, "User deleted!", nil)
}

// changePassword takes the identity from the token, not the path.
func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if !s.decode(w, r, &req) {
		return
	}

	id, _ := IdentityFromContext(r.Context())
	if err := s.accounts.ChangePassword(r.Context(), id.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		s.failWith(w, r, err)
		return
	}
	s.success(w, r, "Password changed!", nil)
}

func (s *Server) getNotificationSettings(w http.ResponseWriter, r *http.Request) {
	ns, err := s.accounts.GetNotificationSettings(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		s.failWith(w, r, err)
		return
	}
	s.success(w, r, "Notification settings fetched!", ns)
}

func (s *Server) updateNotificationSettings(w http.ResponseWriter, r *http.Request) {
	var req notificationSettingsRequest
	if !s.decode(w, r, &req) {
		return
	}

	ns, err := s.accounts.UpdateNotificationSettings(r.Context(), chi.URLParam(r, "userId"), req.NotificationSettings)
	if err != nil {
		s.failWith(w, r, err)
		return
	}
	s.success(w, r, "Notification settings updated!", ns)
}

func (s *Server) getPreferenceSettings(w http.ResponseWriter, r *http.Request) {
	ps, err := s.accounts.GetPreferenceSettings(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		s.failWith(w, r, err)
		return
	}
	s.success(w, r, "Preference settings fetched!", ps)
}

func (s *Server) updatePreferenceSettings(w http.ResponseWriter, r *http.Request) {
	var req preferenceSettingsRequest
	if !s.decode(w, r, &req) {
		return
	}

	ps, err := s.accounts.UpdatePreferenceSettings(r.Context(), chi.URLParam(r, "userId"), req.PreferenceSettings)
	if err != nil {
		s.failWith(w, r, err)
		return
	}
	s.success(w, r, "Preference settings updated!", ps)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.accounts.Ping(r.Context()); err != nil {
		s.logger.Warn(r.Context(), "health check failed", "error", err)
		s.fail(w, r, http.StatusServiceUnavailable, msgUnavailable)
		return
	}
	s.success(w, r, "OK", nil)
}
