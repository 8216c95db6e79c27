// Package notify sends a plain-text summary of the latest Gold artifacts
// after a pipeline run. It stays a stub by design: an SMTP sender when
// configured, a no-op otherwise.
package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Notifier delivers a run-completion message.
type Notifier interface {
	Notify(ctx context.Context, subject, body string) error
}

// Noop discards notifications. Used whenever SMTP is not configured.
type Noop struct{}

// Notify implements Notifier.
func (Noop) Notify(context.Context, string, string) error { return nil }

// SMTPNotifier sends notifications through a plain SMTP relay.
type SMTPNotifier struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// Notify sends the message. Auth is used only when a username is set.
func (n *SMTPNotifier) Notify(ctx context.Context, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.Host == "" || n.From == "" || n.To == "" {
		return fmt.Errorf("smtp notifier requires host, from and to")
	}

	msg := strings.Join([]string{
		"From: " + n.From,
		"To: " + n.To,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="utf-8"`,
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if n.Username != "" {
		auth = smtp.PlainAuth("", n.Username, n.Password, n.Host)
	}

	addr := fmt.Sprintf("%s:%d", n.Host, n.Port)
	if err := smtp.SendMail(addr, auth, n.From, []string{n.To}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// previewLines is how many lines of a text report the summary embeds.
const previewLines = 30

// GoldSummary scans a Gold output directory and builds the plain-text body
// of a run-completion message: the dataset list with sizes, plus a preview
// of each text report.
func GoldSummary(goldDir string, now time.Time) string {
	var lines []string
	lines = append(lines,
		"Employee Analytics - Gold Layer Report",
		"Generated: "+now.Format("2006-01-02 15:04:05"),
		strings.Repeat("=", 60),
	)

	entries, err := os.ReadDir(goldDir)
	if err != nil {
		lines = append(lines, "Gold data folder not found - run the pipeline first.")
		return strings.Join(lines, "\n")
	}

	var csvFiles, txtFiles []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".csv":
			csvFiles = append(csvFiles, entry.Name())
		case ".txt":
			txtFiles = append(txtFiles, entry.Name())
		}
	}
	sort.Strings(csvFiles)
	sort.Strings(txtFiles)

	if len(csvFiles)+len(txtFiles) == 0 {
		lines = append(lines, "No Gold data files found - run the gold stage first.")
		return strings.Join(lines, "\n")
	}

	lines = append(lines, "", fmt.Sprintf("Datasets available: %d", len(csvFiles)+len(txtFiles)), "")

	for _, name := range csvFiles {
		lines = append(lines, fmt.Sprintf("  [CSV] %s  (%s)", name, fileSizeKB(filepath.Join(goldDir, name))))
	}
	for _, name := range txtFiles {
		path := filepath.Join(goldDir, name)
		lines = append(lines, fmt.Sprintf("  [TXT] %s  (%s)", name, fileSizeKB(path)))
		if content, err := os.ReadFile(path); err == nil {
			preview := strings.Split(string(content), "\n")
			if len(preview) > previewLines {
				preview = preview[:previewLines]
			}
			lines = append(lines, "", "--- "+name+" (preview) ---")
			lines = append(lines, preview...)
			lines = append(lines, "--- end preview ---", "")
		}
	}

	return strings.Join(lines, "\n")
}

func fileSizeKB(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "unknown size"
	}
	return fmt.Sprintf("%.1f KB", float64(info.Size())/1024)
}
