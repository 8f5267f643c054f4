// Package digest schedules and sends the daily briefing email.
package digest

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/kimjiho/fxbrief/internal/core"
	"github.com/kimjiho/fxbrief/internal/mailer"
	"github.com/kimjiho/fxbrief/internal/report"
	"github.com/robfig/cron/v3"
)

//go:embed email.gohtml
var emailTemplate string

// Worker pulls the cached analysis report on a schedule and mails it out.
type Worker struct {
	core       *core.BriefingCore
	sender     *mailer.Sender
	recipients []string
	cronSpec   string
	cron       *cron.Cron
	tmpl       *template.Template
}

// NewWorker creates a digest worker scheduled in KST.
func NewWorker(briefingCore *core.BriefingCore, sender *mailer.Sender, recipients []string, cronSpec string) *Worker {
	return &Worker{
		core:       briefingCore,
		sender:     sender,
		recipients: recipients,
		cronSpec:   cronSpec,
		cron:       cron.New(cron.WithLocation(time.FixedZone("KST", 9*60*60))),
		tmpl:       template.Must(template.New("digest").Parse(emailTemplate)),
	}
}

// Start registers the cron schedule and starts the scheduler.
func (w *Worker) Start() {
	_, err := w.cron.AddFunc(w.cronSpec, func() {
		// Run async to not block the scheduler
		go func() {
			log.Println("[Digest] Running scheduled digest job (async)...")
			if err := w.SendDigest(); err != nil {
				log.Printf("[Digest] Scheduled digest failed: %v", err)
			}
		}()
	})
	if err != nil {
		log.Printf("[Digest] Failed to schedule digest job: %v", err)
		return
	}

	w.cron.Start()
	log.Printf("[Digest] Scheduled digest at %q KST for %d recipients", w.cronSpec, len(w.recipients))
}

// Stop stops the scheduler.
func (w *Worker) Stop() {
	w.cron.Stop()
	log.Println("[Digest] Stopped")
}

// SendDigest fetches the current report (cached when fresh) and mails it.
func (w *Worker) SendDigest() error {
	if len(w.recipients) == 0 {
		return fmt.Errorf("no digest recipients configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, cached, err := w.core.GetReport(ctx, false)
	if err != nil {
		return fmt.Errorf("failed to get report: %w", err)
	}
	log.Printf("[Digest] Report ready (cached=%v, generated %s)", cached, result.GeneratedAt.Format(time.RFC3339))

	htmlBody, err := w.render(result)
	if err != nil {
		return fmt.Errorf("failed to render digest: %w", err)
	}

	subject := fmt.Sprintf("[환율 브리핑] %s", result.Title)
	return w.sender.Send(w.recipients, subject, htmlBody)
}

func (w *Worker) render(r *report.AnalysisReport) (string, error) {
	var buf bytes.Buffer
	if err := w.tmpl.Execute(&buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}
