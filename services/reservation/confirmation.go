package reservation

import (
	"context"
	"crypto/rand"
	"fmt"

	bookingRepo "stayhub/database/repository/booking"
)

// Confirmation codes avoid 0/O/1/I to stay readable over the phone.
const confirmationAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	confirmationCodeLength = 8
	codeGenMaxAttempts     = 5
)

// generateConfirmationCode produces a short human-readable code, retrying on
// the rare collision with an existing booking.
func generateConfirmationCode(ctx context.Context, repo bookingRepo.Repository) (string, error) {
	for attempt := 0; attempt < codeGenMaxAttempts; attempt++ {
		code, err := randomCode(confirmationCodeLength)
		if err != nil {
			return "", fmt.Errorf("failed to generate confirmation code: %w", err)
		}
		exists, err := repo.ConfirmationCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("failed to generate a unique confirmation code after %d attempts", codeGenMaxAttempts)
}

func randomCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	code := make([]byte, length)
	for i, b := range buf {
		code[i] = confirmationAlphabet[int(b)%len(confirmationAlphabet)]
	}
	return string(code), nil
}
