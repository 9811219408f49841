package reservation

import (
	"context"
	"strings"
	"testing"
)

// collidingBookingRepo reports the first n generated codes as taken.
type collidingBookingRepo struct {
	*fakeBookingRepo
	collisions int
	calls      int
}

func (f *collidingBookingRepo) ConfirmationCodeExists(_ context.Context, _ string) (bool, error) {
	f.calls++
	return f.calls <= f.collisions, nil
}

func TestGenerateConfirmationCode(t *testing.T) {
	t.Parallel()

	t.Run("codes use the readable alphabet", func(t *testing.T) {
		t.Parallel()
		repo := newFakeBookingRepo()
		for i := 0; i < 50; i++ {
			code, err := generateConfirmationCode(context.Background(), repo)
			if err != nil {
				t.Fatalf("generateConfirmationCode: %v", err)
			}
			if len(code) != confirmationCodeLength {
				t.Fatalf("len(%q) = %d, want %d", code, len(code), confirmationCodeLength)
			}
			for _, r := range code {
				if !strings.ContainsRune(confirmationAlphabet, r) {
					t.Fatalf("code %q contains %q outside the alphabet", code, r)
				}
			}
		}
	})

	t.Run("retries past collisions", func(t *testing.T) {
		t.Parallel()
		repo := &collidingBookingRepo{fakeBookingRepo: newFakeBookingRepo(), collisions: 3}

		code, err := generateConfirmationCode(context.Background(), repo)
		if err != nil {
			t.Fatalf("generateConfirmationCode: %v", err)
		}
		if code == "" {
			t.Error("empty code after collisions cleared")
		}
		if repo.calls != 4 {
			t.Errorf("existence checks = %d, want 4", repo.calls)
		}
	})

	t.Run("gives up after exhausting attempts", func(t *testing.T) {
		t.Parallel()
		repo := &collidingBookingRepo{fakeBookingRepo: newFakeBookingRepo(), collisions: codeGenMaxAttempts + 1}

		if _, err := generateConfirmationCode(context.Background(), repo); err == nil {
			t.Error("expected an error when every attempt collides")
		}
	})
}
