package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"roomcast-service/internal/domain/repository"
	"roomcast-service/pkg/logger"
	"roomcast-service/templates"
)

// HTTPNotificationRepository delivers confirmation messages through the
// external notification service.
type HTTPNotificationRepository struct {
	logger      logger.Logger
	baseURL     string
	bearerToken string
	client      *http.Client
}

// NewHTTPNotificationRepository creates a new notification repository
func NewHTTPNotificationRepository(baseURL, bearerToken string, logger logger.Logger) repository.NotificationRepository {
	return &HTTPNotificationRepository{
		logger:      logger,
		baseURL:     baseURL,
		bearerToken: bearerToken,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

type sendMessageRequest struct {
	Recipient string `json:"recipient"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	Message   string `json:"message"`
	Reference string `json:"reference"`
}

// SendConfirmation sends the booking confirmation message
func (r *HTTPNotificationRepository) SendConfirmation(ctx context.Context, notice *repository.ConfirmationNotice) error {
	body := sendMessageRequest{
		Recipient: notice.Contact.Name,
		Phone:     notice.Contact.Phone,
		Email:     notice.Contact.Email,
		Message:   templates.ConfirmationMessage(notice),
		Reference: notice.Code,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/notifications/send", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+r.bearerToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return fmt.Errorf("notification service returned status %d: %v", resp.StatusCode, errorBody)
	}

	r.logger.Info("Confirmation notice sent", "reservationId", notice.ReservationID, "code", notice.Code)
	return nil
}
