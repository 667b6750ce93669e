package notify

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestBeeepNotifier_New(t *testing.T) {
	config := DefaultConfig()
	bn := newBeeepNotifier(config)

	if bn.config.AppName != config.AppName {
		t.Errorf("expected app name %s, got %s", config.AppName, bn.config.AppName)
	}
	if bn.notify == nil {
		t.Fatal("expected notify func to be set")
	}
}

func TestBeeepNotifier_Send(t *testing.T) {
	bn := newBeeepNotifier(DefaultConfig())
	var gotTitle, gotMessage string
	bn.notify = func(title, message string) error {
		gotTitle, gotMessage = title, message
		return nil
	}

	err := bn.Send(context.Background(), Notification{Title: "scan-patch", Message: "3 updates pending on linux"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotTitle != "scan-patch" || gotMessage != "3 updates pending on linux" {
		t.Errorf("unexpected notification %q / %q", gotTitle, gotMessage)
	}
}

func TestBeeepNotifier_SendError(t *testing.T) {
	bn := newBeeepNotifier(DefaultConfig())
	bn.notify = func(string, string) error { return errors.New("dbus unavailable") }

	err := bn.Send(context.Background(), Notification{Title: "t", Message: "m"})
	if !errors.Is(err, ErrNotificationFailed) {
		t.Errorf("expected ErrNotificationFailed, got %v", err)
	}
}

func TestBeeepNotifier_SendTimeout(t *testing.T) {
	bn := newBeeepNotifier(Config{AppName: "scan-patch", Timeout: 20 * time.Millisecond})
	release := make(chan struct{})
	defer close(release)
	bn.notify = func(string, string) error {
		<-release
		return nil
	}

	err := bn.Send(context.Background(), Notification{Title: "t", Message: "m"})
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
}
