package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockroom/inventory-api/internal/api/metrics"
	"github.com/stockroom/inventory-api/internal/core/domain"
	"github.com/stockroom/inventory-api/internal/core/ports"
)

// ContactHandler relays contact-form messages from authenticated users to
// the support mailbox. The sender's account email goes into Reply-To so
// support can answer directly.
type ContactHandler struct {
	authService ports.AuthService
	mailer      ports.Mailer
	supportAddr string
}

func NewContactHandler(authService ports.AuthService, mailer ports.Mailer, supportAddr string) *ContactHandler {
	return &ContactHandler{authService: authService, mailer: mailer, supportAddr: supportAddr}
}

type contactRequest struct {
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// Send relays a contact message to support.
//
// @Summary      Contact support
// @Tags         contact
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      contactRequest  true  "Subject and message"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/contactus [post]
func (h *ContactHandler) Send(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	body := fmt.Sprintf("<h3>%s</h3><p>%s</p><p>From: %s (%s)</p>",
		req.Subject, req.Message, user.Name, user.Email)

	if _, err := h.mailer.Send(c.Request().Context(), ports.Message{
		Subject: req.Subject,
		HTML:    body,
		To:      h.supportAddr,
		ReplyTo: user.Email,
	}); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrEmailNotSent, err)
	}

	metrics.EmailsSentTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "thank you for contacting us"})
}
