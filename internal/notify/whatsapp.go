package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const twilioBaseURL = "https://api.twilio.com"

// TwilioSender delivers WhatsApp messages through the Twilio Messages API.
type TwilioSender struct {
	httpClient *resty.Client
	accountSID string
	from       string
	logger     *zap.Logger
}

// NewTwilioSender creates a WhatsApp sender. from is the sandbox or business
// number, with or without the "whatsapp:" prefix.
func NewTwilioSender(accountSID, authToken, from string, logger *zap.Logger) *TwilioSender {
	client := resty.New().
		SetBaseURL(twilioBaseURL).
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		SetBasicAuth(accountSID, authToken)

	return &TwilioSender{
		httpClient: client,
		accountSID: accountSID,
		from:       whatsappAddr(from),
		logger:     logger,
	}
}

type twilioMessageResponse struct {
	SID          string `json:"sid"`
	Status       string `json:"status"`
	ErrorCode    *int   `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

// SendMessage posts one WhatsApp message to the given phone number.
func (t *TwilioSender) SendMessage(ctx context.Context, phone, text string) error {
	var result twilioMessageResponse
	resp, err := t.httpClient.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"From": t.from,
			"To":   whatsappAddr(phone),
			"Body": text,
		}).
		SetResult(&result).
		Post(fmt.Sprintf("/2010-04-01/Accounts/%s/Messages.json", t.accountSID))
	if err != nil {
		return fmt.Errorf("twilio request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("twilio returned %s", resp.Status())
	}
	if result.ErrorCode != nil {
		return fmt.Errorf("twilio error %d: %s", *result.ErrorCode, result.ErrorMessage)
	}

	t.logger.Info("whatsapp message sent",
		zap.String("to", phone),
		zap.String("sid", result.SID),
		zap.String("status", result.Status))
	return nil
}

func whatsappAddr(phone string) string {
	if strings.HasPrefix(phone, "whatsapp:") {
		return phone
	}
	return "whatsapp:" + phone
}
