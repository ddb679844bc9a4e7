package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/velunaskf/veluna-api/internal/api/middleware"
	"github.com/velunaskf/veluna-api/internal/models"
	service "github.com/velunaskf/veluna-api/internal/services"
	"github.com/velunaskf/veluna-api/internal/utils"
	"github.com/velunaskf/veluna-api/internal/utils/response"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
	validator           *validator.Validate
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, validator: validator.New()}
}

// SendEmail is an admin endpoint for ad-hoc transactional mail.
func (h *NotificationHandler) SendEmail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.EmailNotificationRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		notification, err := h.notificationService.SendEmail(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to send email", slog.String("recipient", req.Recipient), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Email sent", slog.String("notificationId", notification.ID.String()))
		response.Success(w, http.StatusOK, notification)
	}
}
