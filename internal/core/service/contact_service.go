package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/inkwell/content-system/internal/core/domain"
	"github.com/inkwell/content-system/internal/core/ports"
	"github.com/inkwell/content-system/pkg/metrics"
)

// ContactService stores contact form submissions that pass the spam check.
// Forwarding them to staff is left to whoever reads the collection.
type ContactService struct {
	repo ports.ContactRepository
	spam ports.SpamChecker
	log  zerolog.Logger
}

func NewContactService(repo ports.ContactRepository, spam ports.SpamChecker, log zerolog.Logger) *ContactService {
	return &ContactService{repo: repo, spam: spam, log: log}
}

func (s *ContactService) Submit(ctx context.Context, in ports.ContactInput) (*domain.ContactMessage, error) {
	email := domain.NormalizeEmail(in.Email)
	if email == "" {
		return nil, domain.ErrInvalidEmail
	}

	ok, err := s.spam.Verify(ctx, in.CaptchaToken, in.RemoteIP)
	if err != nil {
		return nil, fmt.Errorf("verify captcha: %w", err)
	}
	if !ok {
		metrics.ContactMessagesTotal.WithLabelValues("rejected").Inc()
		s.log.Warn().Str("remote_ip", in.RemoteIP).Msg("contact message rejected by spam check")
		return nil, domain.ErrSpamRejected
	}

	msg := &domain.ContactMessage{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Email:     email,
		Subject:   strings.TrimSpace(in.Subject),
		Message:   strings.TrimSpace(in.Message),
		RemoteIP:  in.RemoteIP,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.InsertMessage(ctx, msg); err != nil {
		return nil, err
	}

	metrics.ContactMessagesTotal.WithLabelValues("accepted").Inc()
	s.log.Info().Str("message_id", msg.ID).Str("subject", msg.Subject).Msg("contact message received")
	return msg, nil
}
