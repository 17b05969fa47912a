package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/inkwell/content-system/internal/core/domain"
	"github.com/inkwell/content-system/internal/core/ports"
)

const contactBody = `{"name":"Reader","email":"reader@example.com","subject":"Hello","message":"Enjoyed the last post.","recaptcha_token":"tok"}`

func TestContactHandler_Submit(t *testing.T) {
	stub := &stubContactService{
		submitFn: func(ctx context.Context, in ports.ContactInput) (*domain.ContactMessage, error) {
			if in.CaptchaToken != "tok" || in.Subject != "Hello" {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.RemoteIP != "203.0.113.7" {
				t.Fatalf("unexpected remote ip %q", in.RemoteIP)
			}
			return &domain.ContactMessage{ID: "m1"}, nil
		},
	}
	c, rec := newTestContext(http.MethodPost, "/v1/contact", contactBody, nil)
	c.Request().Header.Set("X-Real-IP", "203.0.113.7")

	if err := NewContactHandler(stub).Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated || !strings.Contains(rec.Body.String(), `"id":"m1"`) {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}
}

func TestContactHandler_Submit_ShortMessage(t *testing.T) {
	body := `{"name":"Reader","email":"reader@example.com","subject":"Hello","message":"hi","recaptcha_token":"tok"}`
	c, _ := newTestContext(http.MethodPost, "/v1/contact", body, nil)

	if code := httpStatus(t, NewContactHandler(&stubContactService{}).Submit(c)); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
}

func TestContactHandler_Submit_MissingToken(t *testing.T) {
	body := `{"name":"Reader","email":"reader@example.com","subject":"Hello","message":"Enjoyed the last post."}`
	c, _ := newTestContext(http.MethodPost, "/v1/contact", body, nil)

	if code := httpStatus(t, NewContactHandler(&stubContactService{}).Submit(c)); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
}

func TestContactHandler_Submit_SpamRejected(t *testing.T) {
	stub := &stubContactService{
		submitFn: func(ctx context.Context, in ports.ContactInput) (*domain.ContactMessage, error) {
			return nil, domain.ErrSpamRejected
		},
	}
	c, _ := newTestContext(http.MethodPost, "/v1/contact", contactBody, nil)

	if err := NewContactHandler(stub).Submit(c); !errors.Is(err, domain.ErrSpamRejected) {
		t.Fatalf("expected ErrSpamRejected, got %v", err)
	}
}
