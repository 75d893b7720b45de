package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/unilorin-sug/election/internal/config"
)

func TestBuildEmailMessageHeaders(t *testing.T) {
	from := buildFromAddress("noreply@sug.unilorin.edu.ng", "Électoral Committee")
	msg := buildEmailMessage(from, "ada@students.unilorin.edu.ng", "Your Voting Verification Code", "Your verification code is: 012345")

	for _, want := range []string{
		"To: ada@students.unilorin.edu.ng\r\n",
		"Subject: Your Voting Verification Code\r\n",
		"Content-Type: text/plain; charset=UTF-8\r\n",
		"\r\n\r\nYour verification code is: 012345",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
	if !strings.Contains(from, "=?UTF-8?q?") {
		t.Fatalf("expected encoded display name, got %s", from)
	}
}

func TestEmailServiceSendDisabled(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: false})
	if svc.Enabled() {
		t.Fatalf("disabled service should report disabled")
	}
	if err := svc.Send("ada@students.unilorin.edu.ng", "s", "b"); !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("expected ErrEmailServiceDisabled, got %v", err)
	}
	svc.SetConfig(&config.EmailConfig{Enabled: true})
	if err := svc.Send("ada@students.unilorin.edu.ng", "s", "b"); !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("expected ErrEmailServiceNotConfigured, got %v", err)
	}
}

func TestIsEmailRecipientRejected(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "smtp_550_no_such_recipient",
			err:  errors.New("550 No such recipient here"),
			want: true,
		},
		{
			name: "smtp_user_unknown",
			err:  errors.New("SMTP 5.1.1 user unknown"),
			want: true,
		},
		{
			name: "smtp_550_mailbox_unavailable",
			err:  errors.New("550 mailbox unavailable"),
			want: true,
		},
		{
			name: "network_timeout",
			err:  errors.New("dial tcp timeout"),
			want: false,
		},
		{
			name: "nil_error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isEmailRecipientRejected(tt.err); got != tt.want {
				t.Fatalf("isEmailRecipientRejected() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeEmailSendError(t *testing.T) {
	rejected := errors.New("550 No such recipient here")
	if got := normalizeEmailSendError(rejected); !errors.Is(got, ErrEmailRecipientRejected) {
		t.Fatalf("normalizeEmailSendError() expected ErrEmailRecipientRejected, got %v", got)
	}

	networkErr := errors.New("dial tcp timeout")
	if got := normalizeEmailSendError(networkErr); !errors.Is(got, networkErr) {
		t.Fatalf("normalizeEmailSendError() should keep original error, got %v", got)
	}

	if got := normalizeEmailSendError(nil); got != nil {
		t.Fatalf("normalizeEmailSendError(nil) should be nil, got %v", got)
	}
}
