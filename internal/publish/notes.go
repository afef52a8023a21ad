package publish

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/voicescribe/scribe/internal/logger"
	"github.com/voicescribe/scribe/pkg/executor"
)

const osascriptBin = "/usr/bin/osascript"

// notesDestination creates a note in the Apple Notes application via
// osascript. The HTML body goes through a temp file so transcript content
// containing quotes or backslashes cannot break out of the script.
type notesDestination struct {
	folder   string
	account  string
	executor executor.Executor
	logger   logger.Logger
}

func (d *notesDestination) Name() string { return DestNote }

func (d *notesDestination) Publish(ctx context.Context, art Artifact) (string, error) {
	d.ensureFolder(ctx)

	tmp, err := os.CreateTemp("", "scribed-*.html")
	if err != nil {
		return "", fmt.Errorf("create temp html: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(art.HTML); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp html: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp html: %w", err)
	}

	script := fmt.Sprintf(`
		set htmlFile to POSIX file "%s"
		set htmlContent to read htmlFile as «class utf8»
		tell application "Notes"
			tell account "%s"
				make new note at folder "%s" with properties {name:"%s", body:htmlContent}
			end tell
		end tell
	`, tmp.Name(), escapeAppleScript(d.account), escapeAppleScript(d.folder), escapeAppleScript(art.Title))

	if _, err := d.executor.Execute(ctx, osascriptBin, "-e", script); err != nil {
		return "", fmt.Errorf("create note: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", d.account, d.folder, art.Title), nil
}

func (d *notesDestination) ensureFolder(ctx context.Context) {
	script := fmt.Sprintf(`
		tell application "Notes"
			tell account "%s"
				if not (exists folder "%s") then
					make new folder with properties {name:"%s"}
				end if
			end tell
		end tell
	`, escapeAppleScript(d.account), escapeAppleScript(d.folder), escapeAppleScript(d.folder))

	if _, err := d.executor.Execute(ctx, osascriptBin, "-e", script); err != nil {
		d.logger.Warn(ctx, "Ensure notes folder failed: %v", err)
	}
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
