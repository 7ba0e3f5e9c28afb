package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/crocobrasseur/website/internal/config"
	"github.com/crocobrasseur/website/internal/util"
	log "github.com/sirupsen/logrus"
)

// Sender delivers notification mail. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(to, subject, body string)
}

// NewSender returns an SMTP-backed sender, or a disabled no-op sender when
// no host is configured.
func NewSender(cfg config.SMTPConfig) Sender {
	if strings.TrimSpace(cfg.Host) == "" {
		log.Info("mail notifications disabled (no smtp host configured)")
		return noopSender{}
	}
	port := cfg.Port
	if port == 0 {
		port = 587
	}
	return &smtpSender{cfg: cfg, addr: fmt.Sprintf("%s:%d", cfg.Host, port)}
}

type noopSender struct{}

func (noopSender) Send(string, string, string) {}

type smtpSender struct {
	cfg  config.SMTPConfig
	addr string
}

// Send delivers asynchronously. Delivery failures are logged and never
// reach the caller; notification mail must not block or fail a request.
func (s *smtpSender) Send(to, subject, body string) {
	if strings.TrimSpace(to) == "" {
		return
	}
	go func() {
		msg := strings.Join([]string{
			"From: " + s.cfg.From,
			"To: " + to,
			"Subject: " + subject,
			"MIME-Version: 1.0",
			"Content-Type: text/plain; charset=utf-8",
			"",
			body,
		}, "\r\n")

		var auth smtp.Auth
		if s.cfg.Username != "" {
			auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		}
		if errSend := smtp.SendMail(s.addr, auth, s.cfg.From, []string{to}, []byte(msg)); errSend != nil {
			log.WithError(errSend).Warnf("mail to %s dropped: %s", util.MaskEmail(to), subject)
		}
	}()
}
