package newsletter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/parish-tech/steeple/internal/db"
	"github.com/parish-tech/steeple/internal/model"
	redisclient "github.com/parish-tech/steeple/internal/redis"
)

// codeTTL bounds how long an emailed verification code stays redeemable.
const codeTTL = 15 * time.Minute

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

	ErrInvalidEmail  = errors.New("invalid email address")
	ErrNotSubscribed = errors.New("email is not subscribed")
	ErrAlreadyActive = errors.New("email is already subscribed")
	ErrNeverVerified = errors.New("email was never verified")
)

// VerificationService owns the subscribe-then-verify interaction. Codes are
// held only in Redis under newsletter:verify:<email>; Postgres tracks the
// resulting subscriber status.
type VerificationService struct {
	store  db.Store
	mailer Mailer
}

func NewVerificationService(store db.Store, mailer Mailer) *VerificationService {
	return &VerificationService{store: store, mailer: mailer}
}

// Subscribe registers (or re-registers) a pending subscriber and emails a
// fresh verification code. An already-active email is rejected; a pending
// one simply gets a new code.
func (s *VerificationService) Subscribe(ctx context.Context, email string, name *string) (model.Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return model.Subscriber{}, ErrInvalidEmail
	}

	sub, err := s.store.GetSubscriberByEmail(email)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		sub, err = s.store.CreateSubscriber(email, name)
		if err != nil {
			return model.Subscriber{}, err
		}
	case err != nil:
		return model.Subscriber{}, err
	case sub.Status == model.SubscriberActive:
		return model.Subscriber{}, ErrAlreadyActive
	}

	code := generateCode()
	if err := redisclient.Set(ctx, verifyKey(email), code, codeTTL); err != nil {
		return model.Subscriber{}, fmt.Errorf("storing verification code: %w", err)
	}

	body := fmt.Sprintf(
		"<p>Your newsletter verification code is <strong>%s</strong>.</p><p>It expires in %d minutes.</p>",
		code, int(codeTTL.Minutes()),
	)
	if err := s.mailer.Send([]string{email}, "Confirm your subscription", body); err != nil {
		log.Error().Err(err).Msg("failed to email verification code")
		return model.Subscriber{}, fmt.Errorf("sending verification code: %w", err)
	}

	return sub, nil
}

// Verify checks the submitted code. A wrong code returns (false, nil) and
// leaves the subscription pending so the user may retry without
// re-subscribing; a redeemed code activates the subscriber and is deleted.
// Infrastructure failures return an error with state unchanged.
func (s *VerificationService) Verify(ctx context.Context, email, code string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	stored, err := redisclient.Get(ctx, verifyKey(email))
	if redisclient.IsMissing(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading verification code: %w", err)
	}
	if !strings.EqualFold(strings.TrimSpace(code), stored) {
		return false, nil
	}

	if _, err := s.store.MarkSubscriberVerified(email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrNotSubscribed
		}
		return false, err
	}

	// best effort; the code expires on its own anyway
	if err := redisclient.Del(ctx, verifyKey(email)); err != nil {
		log.Warn().Err(err).Msg("failed to delete redeemed verification code")
	}

	return true, nil
}

// Resubscribe reactivates a previously verified address without a new code.
func (s *VerificationService) Resubscribe(ctx context.Context, email string) (model.Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return model.Subscriber{}, ErrInvalidEmail
	}

	sub, err := s.store.ReactivateSubscriber(email)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Subscriber{}, ErrNeverVerified
	}
	return sub, err
}

func verifyKey(email string) string {
	return "newsletter:verify:" + email
}

// generateCode mirrors the pairing-code alphabet: no ambiguous characters.
func generateCode() string {
	const charset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	b := make([]byte, 6)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
