// Command scan-patch lists pending OS updates as JSON.
//
// It tries the Linux, Windows and macOS update tools in turn and prints the
// first answer: a JSON array of updates, "No updates found", or
// "Unsupported operating system" when every tool failed.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jongio/scan-patch/cmdutil"
	"github.com/jongio/scan-patch/notify"
	"github.com/jongio/scan-patch/probe"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(defaultDeps()).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func defaultDeps() deps {
	return deps{
		newRunner: func(timeout time.Duration) cmdutil.Runner {
			r := cmdutil.NewExecRunner(timeout)
			r.Stderr = func(line string) {
				log.Debug("tool stderr", "line", line)
			}
			return r
		},
		detectPlatform: probe.DetectPlatform,
		notifier:       notify.New(notify.DefaultConfig()),
	}
}
