package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

type WebhookNotify struct {
	UserUUID  string `json:"userUUID"`
	Event     string `json:"event"`
	TimeStamp string `json:"timestamp"`
}

// WebhookNotifier отправляет уведомления о повторном использовании уже
// ротированного refresh токена — наблюдаемый признак компрометации.
type WebhookNotifier struct {
	webhookURL string
	client     *http.Client
}

func NewWebhookNotifier(webhookURL string, timeout time.Duration) *WebhookNotifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &WebhookNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: timeout},
	}
}

// NotifyTokenReuse шлет webhook в отдельной горутине, не блокируя запрос.
// Ошибки отправки только логируются.
func (notifier *WebhookNotifier) NotifyTokenReuse(userUUID string) {
	if notifier.webhookURL == "" {
		return
	}

	go func() {
		if err := notifier.send(userUUID); err != nil {
			log.Printf("ошибка отправки webhook: %v", err)
		}
	}()
}

func (notifier *WebhookNotifier) send(userUUID string) error {
	payload := &WebhookNotify{
		UserUUID:  userUUID,
		Event:     "refresh_token_reuse",
		TimeStamp: time.Now().Format(time.RFC3339),
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("ошибка преобразования в json: %w", err)
	}

	response, err := notifier.client.Post(notifier.webhookURL, "application/json", bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("ошибка отправки webhook: %w", err)
	}
	defer response.Body.Close()

	log.Print("webhook успешно отправлен")
	return nil
}
