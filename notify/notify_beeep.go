package notify

import (
	"context"
	"fmt"

	"github.com/gen2brain/beeep"
)

// beeepNotifier implements Notifier using the cross-platform beeep library.
type beeepNotifier struct {
	config Config
	notify func(title, message string) error
}

func newBeeepNotifier(config Config) *beeepNotifier {
	return &beeepNotifier{
		config: config,
		notify: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
}

// Send sends a notification using beeep. Some platforms block on a session
// bus, so the call is abandoned after config.Timeout.
func (n *beeepNotifier) Send(ctx context.Context, notification Notification) error {
	if n.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.config.Timeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() {
		done <- n.notify(notification.Title, notification.Message)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%w: %w", ErrNotificationFailed, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
	}
}
