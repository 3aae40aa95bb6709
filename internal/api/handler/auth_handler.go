package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stockroom/inventory-api/internal/api/metrics"
	"github.com/stockroom/inventory-api/internal/core/ports"
)

const (
	sessionCookieName = "token"
	sessionTTL        = 24 * time.Hour
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// sessionCookie builds the session cookie. SameSite=None with Secure lets
// the browser send it from a frontend hosted on a different origin.
func sessionCookie(token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}

// Register creates a new user account and opens a session.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  profileResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/users/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, token, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	c.SetCookie(sessionCookie(token, time.Now().Add(sessionTTL)))
	return c.JSON(http.StatusCreated, toProfileResponse(user, token))
}

// Login authenticates a user and opens a session.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	metrics.LoginsTotal.Inc()
	c.SetCookie(sessionCookie(token, time.Now().Add(sessionTTL)))
	return c.JSON(http.StatusOK, toProfileResponse(user, token))
}

// Logout clears the session cookie. Sessions are stateless, so there is
// nothing to revoke server-side.
//
// @Summary      Logout
// @Tags         users
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /api/users/logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(sessionCookie("", time.Unix(0, 0)))
	return c.JSON(http.StatusOK, messageResponse{Message: "successfully logged out"})
}

// GetUser returns the authenticated user's profile.
//
// @Summary      Get current user profile
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  profileResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/users/getuser [get]
func (h *AuthHandler) GetUser(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProfileResponse(user, ""))
}

// LoggedIn reports whether the request carries a valid session. It is not
// behind the auth middleware: an absent or expired token is a plain false,
// never a 401.
//
// @Summary      Check login status
// @Tags         users
// @Produce      json
// @Success      200  {boolean}  boolean
// @Router       /api/users/loggedin [get]
func (h *AuthHandler) LoggedIn(c echo.Context) error {
	token := ""
	if cookie, err := c.Cookie(sessionCookieName); err == nil {
		token = cookie.Value
	}
	return c.JSON(http.StatusOK, h.authService.VerifySession(token))
}

// UpdateUser applies a partial profile update. Absent fields keep their
// stored values; email cannot be changed here.
//
// @Summary      Update profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/users/updateuser [patch]
func (h *AuthHandler) UpdateUser(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.authService.UpdateProfile(c.Request().Context(), userID, ports.UpdateProfileInput{
		Name:  req.Name,
		Phone: req.Phone,
		Bio:   req.Bio,
		Photo: req.Photo,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProfileResponse(user, ""))
}

// ChangePassword swaps the authenticated user's password after verifying
// the current one.
//
// @Summary      Change password
// @Tags         users
// @Accept       json
// @Produce      plain
// @Security     CookieAuth
// @Param        body  body      changePasswordRequest  true  "Old and new password"
// @Success      200   {string}  string
// @Failure      400   {object}  map[string]string
// @Router       /api/users/changepassword [patch]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.authService.ChangePassword(c.Request().Context(), userID, req.OldPassword, req.Password); err != nil {
		return err
	}

	return c.String(http.StatusOK, "password changed successfully")
}

// ForgotPassword issues a reset token and emails the reset link. The
// response does not reveal whether the email exists beyond the 404 the
// lookup produces.
//
// @Summary      Request password reset
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  forgotPasswordResponse
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/users/forgotpassword [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.authService.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}

	metrics.PasswordResetsRequestedTotal.Inc()
	return c.JSON(http.StatusOK, forgotPasswordResponse{Success: true, Message: "reset email sent"})
}

// ResetPassword consumes a reset token from the URL and sets a new password.
//
// @Summary      Reset password with a token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        resetToken  path      string                true  "Raw reset token"
// @Param        body        body      resetPasswordRequest  true  "New password"
// @Success      200         {object}  messageResponse
// @Failure      404         {object}  map[string]string
// @Router       /api/users/resetpassword/{resetToken} [put]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.authService.ResetPassword(c.Request().Context(), c.Param("resetToken"), req.Password); err != nil {
		return err
	}

	metrics.PasswordResetsCompletedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "password reset successful, please login"})
}
