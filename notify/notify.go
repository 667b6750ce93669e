// Package notify shows desktop notifications about scan results.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jongio/scan-patch/dispatch"
	"github.com/jongio/scan-patch/report"
)

// Notification represents a notification to be displayed.
type Notification struct {
	// Title is the notification title
	Title string

	// Message is the notification body
	Message string

	// Severity indicates the notification severity
	Severity string // "critical", "warning", "info"
}

// Notifier is the interface for desktop notification systems.
type Notifier interface {
	// Send sends a notification to the OS notification system.
	Send(ctx context.Context, notification Notification) error
}

// Config contains notification system configuration.
type Config struct {
	// AppName is the application name shown as the notification title
	AppName string

	// Timeout for notification operations
	Timeout time.Duration
}

// DefaultConfig returns default notification configuration.
func DefaultConfig() Config {
	return Config{
		AppName: "scan-patch",
		Timeout: 5 * time.Second,
	}
}

// New creates a notifier backed by the OS notification system.
func New(config Config) Notifier {
	return newBeeepNotifier(config)
}

var (
	ErrNotificationFailed = errors.New("failed to send notification")
	ErrTimeout            = errors.New("notification timeout")
)

// criticalSeverities are Windows update severities that raise the
// notification to critical.
var criticalSeverities = map[string]bool{
	"Critical":  true,
	"Important": true,
}

// ForResult builds the notification for a scan result. It returns false when
// nothing is pending, so quiet scans stay quiet.
func ForResult(appName string, res dispatch.Result) (Notification, bool) {
	if res.Unsupported() || len(res.Records) == 0 {
		return Notification{}, false
	}

	severity := "warning"
	for _, r := range res.Records {
		if criticalSeverities[r.Severity] {
			severity = "critical"
			break
		}
	}

	msg := report.Summary(res)
	if severity == "critical" {
		msg += " (includes critical updates)"
	}
	return Notification{
		Title:    appName,
		Message:  msg,
		Severity: severity,
	}, true
}

// SendResult sends the notification for res, if any.
func SendResult(ctx context.Context, n Notifier, appName string, res dispatch.Result) error {
	notification, ok := ForResult(appName, res)
	if !ok {
		return nil
	}
	if err := n.Send(ctx, notification); err != nil {
		return fmt.Errorf("notify %q: %w", notification.Message, err)
	}
	return nil
}
