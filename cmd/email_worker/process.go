package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-auth-core/pkg/mailer"
	mailtpl "github.com/oksasatya/go-ddd-auth-core/pkg/mailer/templates"
)

type outcome int

const (
	ack     outcome = iota
	drop            // nack without requeue
	requeue         // nack with requeue
)

type processor struct {
	sender      mailer.Sender
	logger      *logrus.Logger
	sendTimeout time.Duration
}

// process renders and sends one queued job. Malformed or unrenderable jobs
// are dropped; delivery failures are requeued.
func (p *processor) process(ctx context.Context, body []byte) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		p.logger.WithError(err).Warn("bad message")
		return drop
	}
	if !job.Valid() {
		p.logger.WithField("template", job.Template).Warn("incomplete email job")
		return drop
	}

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		s, t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			p.logger.WithError(err).WithField("template", job.Template).Warn("render failed")
			return drop
		}
		subject, text, html = s, t, h
	}

	c, cancel := context.WithTimeout(ctx, p.sendTimeout)
	defer cancel()
	if err := p.sender.Send(c, job.To, subject, text, html); err != nil {
		p.logger.WithError(err).WithField("template", job.Template).Error("send failed")
		return requeue
	}
	p.logger.WithField("template", job.Template).Info("email sent")
	return ack
}
