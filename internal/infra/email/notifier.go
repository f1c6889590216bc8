// Package email sends a summary mail when a batch run finishes with
// failures, so long unattended runs do not fail silently.
package email

import (
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

type SMTPNotifier struct {
	host   string
	port   int
	from   string
	to     string
	logger *zap.Logger
}

type SMTPConfig struct {
	Host string
	Port int
	From string
	To   string
}

func NewSMTPNotifier(cfg SMTPConfig, logger *zap.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		host:   cfg.Host,
		port:   cfg.Port,
		from:   cfg.From,
		to:     cfg.To,
		logger: logger,
	}
}

func (n *SMTPNotifier) NotifyBatchFailures(_ context.Context, runID string, failed, total int) error {
	addr := fmt.Sprintf("%s:%d", n.host, n.port)
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: visper run %s finished with failures\r\n\r\n"+
		"%d of %d segments failed. See report.json under the output root for details.\r\n",
		n.from, n.to, runID, failed, total)

	if err := smtp.SendMail(addr, nil, n.from, []string{n.to}, []byte(msg)); err != nil {
		return fmt.Errorf("send failure mail: %w", err)
	}
	n.logger.Info("failure notification sent",
		zap.String("run_id", runID),
		zap.Int("failed", failed),
	)
	return nil
}
