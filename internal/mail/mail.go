package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net"
	netmail "net/mail"
	"net/smtp"
	"strings"
	"time"

	"storefront-be/internal/config"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var testTemplate = template.Must(template.ParseFS(templateFS, "templates/test.html"))

const testSubject = "Storefront test email"

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Result is the outcome of a send, shaped for the admin API.
type Result struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

type Sender struct {
	host     string
	port     string
	user     string
	password string
	from     string
	store    string

	send    sendFunc
	now     func() time.Time
	metrics *metrics.Registry
}

func NewSender(cfg *config.Config, storeName string, reg *metrics.Registry) *Sender {
	from := cfg.MailFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	return &Sender{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     from,
		store:    storeName,
		send:     smtp.SendMail,
		now:      time.Now,
		metrics:  reg,
	}
}

func (s *Sender) configured() bool {
	return s.host != "" && s.from != ""
}

func (s *Sender) messageID() string {
	domain := s.host
	if at := strings.LastIndex(s.from, "@"); at >= 0 {
		domain = s.from[at+1:]
	}
	domain = strings.TrimSuffix(domain, ">")
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}

// SendTest delivers the fixed HTML test message to recipient. Failures are
// reported in the result, never as a panic or error value.
func (s *Sender) SendTest(ctx context.Context, recipient string) Result {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "mail"),
		zap.String("method", "SendTest"),
	)

	to, err := parseRecipient(recipient)
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}
	if !s.configured() {
		return Result{Success: false, Error: ErrNotConfigured.Error()}
	}

	var body bytes.Buffer
	err = testTemplate.Execute(&body, map[string]string{
		"StoreName": s.store,
		"SentAt":    s.now().UTC().Format(time.RFC1123),
	})
	if err != nil {
		log.Error("render template failed", zap.Error(err))
		return Result{Success: false, Error: ErrSendFailed.Error()}
	}

	id := s.messageID()
	msg := s.compose(to, testSubject, id, body.String())

	var auth smtp.Auth
	if s.user != "" {
		auth = smtp.PlainAuth("", s.user, s.password, s.host)
	}

	if err := s.send(net.JoinHostPort(s.host, s.port), auth, s.from, []string{to}, msg); err != nil {
		s.metrics.Inc(metrics.MailFailures)
		log.Error("smtp send failed", zap.Error(err))
		return Result{Success: false, Error: ErrSendFailed.Error()}
	}

	s.metrics.Inc(metrics.MailsSent)
	log.Info("test email sent", zap.String("message_id", id))
	return Result{Success: true, MessageID: id}
}

func (s *Sender) compose(to, subject, messageID, html string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "Message-ID: %s\r\n", messageID)
	fmt.Fprintf(&b, "Date: %s\r\n", s.now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(html)
	return []byte(b.String())
}

func parseRecipient(recipient string) (string, error) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return "", ErrRecipientRequired
	}
	addr, err := netmail.ParseAddress(recipient)
	if err != nil {
		return "", ErrInvalidRecipient
	}
	return addr.Address, nil
}
