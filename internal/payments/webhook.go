package payments

import (
	"encoding/json"

	stripe "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/webhook"
)

// Типы событий шлюза, которые применяет реконсилятор
const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
)

// WebhookEvent — проверенное событие шлюза в нейтральной форме
type WebhookEvent struct {
	ID       string
	Type     string
	IntentID string
}

// VerifyEvent проверяет подпись сырого тела вебхука и разбирает событие.
// Непроверяемое событие никогда не применяется — fail closed.
func VerifyEvent(payload []byte, sigHeader, secret string) (WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, secret)
	if err != nil {
		return WebhookEvent{}, err
	}

	ev := WebhookEvent{ID: event.ID, Type: string(event.Type)}

	switch ev.Type {
	case EventPaymentSucceeded, EventPaymentFailed:
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return WebhookEvent{}, err
		}
		ev.IntentID = pi.ID
	}

	return ev, nil
}
