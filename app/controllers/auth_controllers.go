package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/ameya/app/models"
	"github.com/shashiranjanraj/ameya/app/services"
	"github.com/shashiranjanraj/ameya/app/state"
	"github.com/shashiranjanraj/ameya/pkg/bind"
	"github.com/shashiranjanraj/ameya/pkg/logger"
	"github.com/shashiranjanraj/ameya/pkg/response"
	"github.com/shashiranjanraj/ameya/pkg/session"
)

// AuthController serves login, registration and profile management.
type AuthController struct {
	auth    *services.AuthService
	session *state.SessionContext
}

func NewAuthController(auth *services.AuthService, session *state.SessionContext) *AuthController {
	return &AuthController{auth: auth, session: session}
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
}

// Login authenticates by email. Unknown addresses are auto-registered,
// so this only fails on malformed input or storage trouble.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, token, err := c.auth.Login(in.Email, in.Password)
	if err != nil {
		logger.WithCtx(r.Context()).Error("login", "error", err)
		response.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}

	sess := session.FromCtx(r)
	sess.Set("user_id", user.ID)
	if err := sess.Save(w); err != nil {
		logger.WithCtx(r.Context()).Warn("session save", "error", err)
	}

	response.Success(w, map[string]interface{}{"user": user, "token": token})
}

type registerInput struct {
	Name     string          `json:"name" validate:"required,max=255"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=4"`
	Phone    string          `json:"phone" validate:"nullable,max=64"`
	Address  *models.Address `json:"address"`
}

// Register creates an account; duplicate emails are a business outcome
// (409), not a server error.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, token, ok, err := c.auth.Register(state.RegisterInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Phone:    in.Phone,
		Address:  in.Address,
	})
	if err != nil {
		logger.WithCtx(r.Context()).Error("register", "error", err)
		response.Error(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	if !ok {
		response.Error(w, http.StatusConflict, "Email is already registered")
		return
	}

	response.Created(w, map[string]interface{}{"user": user, "token": token})
}

// Me returns the current session state.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	response.Success(w, c.session.State())
}

type updateProfileInput struct {
	Name    *string         `json:"name"`
	Phone   *string         `json:"phone"`
	Address *models.Address `json:"address"`
}

// UpdateProfile merges partial fields into the logged-in user.
func (c *AuthController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if _, ok := c.session.Current(); !ok {
		response.Unauthorized(w)
		return
	}

	var in updateProfileInput
	if _, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := c.session.Update(state.UpdateInput{
		Name:    in.Name,
		Phone:   in.Phone,
		Address: in.Address,
	})
	if err != nil {
		logger.WithCtx(r.Context()).Error("profile update", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not update profile")
		return
	}
	response.Success(w, user)
}

// Logout clears the session record; the registered list is untouched.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := c.session.Logout(); err != nil {
		logger.WithCtx(r.Context()).Error("logout", "error", err)
		response.Error(w, http.StatusInternalServerError, "Logout failed")
		return
	}

	sess := session.FromCtx(r)
	sess.Invalidate()
	if err := sess.Save(w); err != nil {
		logger.WithCtx(r.Context()).Warn("session save", "error", err)
	}

	response.Success(w, map[string]bool{"loggedOut": true})
}
