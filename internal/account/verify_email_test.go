package account

import (
	"context"
	"testing"
)

func TestVerifyEmail_MarksVerified(t *testing.T) {
	t.Parallel()

	fx := newSvcForTest(t)
	created, err := fx.svc.Register(context.Background(), "alice@example.com", "Alice", strongPassword)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token := fx.mail.lastVerifyToken(t, created.Email)
	a, err := fx.svc.VerifyEmail(context.Background(), token)
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if !a.IsVerified {
		t.Fatalf("expected verified account")
	}
	if a.VerificationToken != "" {
		t.Fatalf("token must be cleared after use")
	}
}

func TestVerifyEmail_TokenIsSingleUse(t *testing.T) {
	t.Parallel()

	fx := newSvcForTest(t)
	if _, err := fx.svc.Register(context.Background(), "alice@example.com", "Alice", strongPassword); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token := fx.mail.lastVerifyToken(t, "alice@example.com")
	if _, err := fx.svc.VerifyEmail(context.Background(), token); err != nil {
		t.Fatalf("first use failed: %v", err)
	}

	_, err := fx.svc.VerifyEmail(context.Background(), token)
	requireErrCode(t, err, "invalid_verification_token")
}

func TestVerifyEmail_UnknownToken(t *testing.T) {
	t.Parallel()

	fx := newSvcForTest(t)

	_, err := fx.svc.VerifyEmail(context.Background(), "never-issued")
	requireErrCode(t, err, "invalid_verification_token")
}

func TestVerifyEmail_EmptyToken(t *testing.T) {
	t.Parallel()

	fx := newSvcForTest(t)

	_, err := fx.svc.VerifyEmail(context.Background(), "")
	requireErrCode(t, err, "invalid_verification_token")
}
