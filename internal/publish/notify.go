package publish

import (
	"context"
	"fmt"

	"github.com/voicescribe/scribe/internal/logger"
	"github.com/voicescribe/scribe/pkg/executor"
)

type implNotifier struct {
	executor executor.Executor
	logger   logger.Logger
}

// NewNotifier creates a desktop Notifier backed by osascript.
func NewNotifier(exec executor.Executor, log logger.Logger) Notifier {
	return &implNotifier{executor: exec, logger: log}
}

func (n *implNotifier) Notify(ctx context.Context, message string) {
	script := fmt.Sprintf(`display notification "%s" with title "Scribe"`, escapeAppleScript(message))
	if _, err := n.executor.Execute(ctx, osascriptBin, "-e", script); err != nil {
		n.logger.Warn(ctx, "Desktop notification failed: %v", err)
	}
}

// NopNotifier discards notifications; used when notify is disabled.
type NopNotifier struct{}

func (NopNotifier) Notify(ctx context.Context, message string) {}
