// Package mail sends notification emails over SMTP. Every send is
// fire-and-forget: failures are logged and never reach the caller.
package mail

import (
	"fmt"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/sahildeshmukh45/tl/internal/config"
	"github.com/sahildeshmukh45/tl/internal/model"
)

type Mailer struct {
	log    *zap.Logger
	dialer *gomail.Dialer
	from   string
}

func New(log *zap.Logger, cfg *config.Config) *Mailer {
	return &Mailer{
		log:    log,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.MailFrom,
	}
}

// Welcome greets a newly registered user.
func (m *Mailer) Welcome(user *model.User) {
	body := fmt.Sprintf("Hi %s,\n\nYour TeamLogger account %q has been created. You can now punch in and start tracking your time.\n",
		user.FullName(), user.Username)
	m.send(user.Email, "Welcome to TeamLogger", body)
}

// PasswordReset delivers a reset token.
func (m *Mailer) PasswordReset(email, fullName, token string) {
	body := fmt.Sprintf("Hi %s,\n\nUse the following token to reset your password within 24 hours:\n\n%s\n\nIf you did not request this, ignore this message.\n",
		fullName, token)
	m.send(email, "TeamLogger password reset", body)
}

// TimeEntryApproved tells a user their entry was approved.
func (m *Mailer) TimeEntryApproved(user *model.User, approver *model.User, entry *model.TimeEntry) {
	body := fmt.Sprintf("Hi %s,\n\nYour time entry of %s was approved by %s.\n",
		user.FullName(), entry.PunchInTime.Format("2006-01-02"), approver.FullName())
	m.send(user.Email, "Time entry approved", body)
}

// OvertimeAlert informs a user about recorded overtime.
func (m *Mailer) OvertimeAlert(user *model.User, overtimeHours float64) {
	body := fmt.Sprintf("Hi %s,\n\nYou recorded %.2f hours of overtime today.\n",
		user.FullName(), overtimeHours)
	m.send(user.Email, "Overtime recorded", body)
}

func (m *Mailer) send(to, subject, body string) {
	go func() {
		msg := gomail.NewMessage()
		msg.SetHeader("From", m.from)
		msg.SetHeader("To", to)
		msg.SetHeader("Subject", subject)
		msg.SetBody("text/plain", body)

		if err := m.dialer.DialAndSend(msg); err != nil {
			m.log.Warn("failed to send email",
				zap.String("to", to),
				zap.String("subject", subject),
				zap.Error(err))
		}
	}()
}
