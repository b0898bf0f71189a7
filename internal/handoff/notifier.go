package handoff

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

// Alert announces that a session reached the escalation threshold.
type Alert struct {
	ID       string    `json:"id"`
	Actor    string    `json:"actor"`
	Contacts Directory `json:"contacts"`
	FiredAt  time.Time `json:"fired_at"`
}

// NewAlert creates an alert for actor with a fresh ID.
func NewAlert(actor string, contacts Directory) Alert {
	return Alert{
		ID:       uuid.NewString(),
		Actor:    actor,
		Contacts: contacts,
		FiredAt:  time.Now().UTC(),
	}
}

// Notifier delivers hand-off alerts to the downstream workflow.
type Notifier interface {
	Notify(ctx context.Context, alert Alert) error
}

// LogNotifier writes alerts to the structured log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, alert Alert) error {
	slog.Warn("[Handoff] Escalation threshold reached",
		slog.String("alert_id", alert.ID),
		slog.String("actor", alert.Actor),
		slog.Int("contacts", len(alert.Contacts)))
	return nil
}

// Multi fans an alert out to several notifiers and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, alert Alert) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, alert); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ValkeyNotifier publishes alerts as JSON on a Valkey channel.
type ValkeyNotifier struct {
	client  valkey.Client
	channel string
}

// NewValkeyNotifier connects to addr and verifies the connection with PING.
func NewValkeyNotifier(addr, password, channel string) (*ValkeyNotifier, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:      []string{addr},
		Password:         password,
		ConnWriteTimeout: 5 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("[ValkeyNotifier] failed to create client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyNotifier] failed to ping: %w", err)
	}

	slog.Info("[ValkeyNotifier] Connected", slog.String("addr", addr), slog.String("channel", channel))
	return NewValkeyNotifierFromClient(client, channel), nil
}

// NewValkeyNotifierFromClient wraps an existing client.
func NewValkeyNotifierFromClient(client valkey.Client, channel string) *ValkeyNotifier {
	return &ValkeyNotifier{client: client, channel: channel}
}

func (v *ValkeyNotifier) Notify(ctx context.Context, alert Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("marshaling alert: %w", err)
	}

	cmd := v.client.B().Publish().Channel(v.channel).Message(string(payload)).Build()
	if err := v.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("publishing alert %s: %w", alert.ID, err)
	}
	return nil
}

func (v *ValkeyNotifier) Close() {
	v.client.Close()
}
