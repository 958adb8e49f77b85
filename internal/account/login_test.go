package account

import (
	"context"
	"testing"
)

// registerAndVerify walks an account through the happy registration path.
func registerAndVerify(t *testing.T, fx *svcFixture, email string) {
	t.Helper()

	if _, err := fx.svc.Register(context.Background(), email, "Test User", strongPassword); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	token := fx.mail.lastVerifyToken(t, email)
	if _, err := fx.svc.VerifyEmail(context.Background(), token); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
}

func TestLogin_EmptyFields_InvalidCredentials(t *testing.T) {
	t.Parallel()

	fx := newSvcForTest(t)

	_, err := fx.svc.Login(context.Background(), "", "")
	requireErrCode(t, err, "invalid_credentials")
}

func TestLogin_UnknownEmail_InvalidCredentials(t *testing.T) {
	t.Parallel()

	fx := newSvcForTest(t)

	_, err := fx.svc.Login(context.Background(), "missing@example.com", strongPassword)
	requireErrCode(t, err, "invalid_credentials")
}

func TestLogin_WrongPassword_InvalidCredentials(t *testing.T) {
	t.Parallel()

	fx := newSvcForTest(t)
	registerAndVerify(t, fx, "alice@example.com")

	_, err := fx.svc.Login(context.Background(), "alice@example.com", "Wr0ngPass!x")
	requireErrCode(t, err, "invalid_credentials")
}

func TestLogin_Unverified_Rejected(t *testing.T) {
	t.Parallel()

	fx := newSvcForTest(t)
	if _, err := fx.svc.Register(context.Background(), "alice@example.com", "Alice", strongPassword); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := fx.svc.Login(context.Background(), "alice@example.com", strongPassword)
	requireErrCode(t, err, "email_not_verified")
}

func TestLogin_Unverified_WrongPassword_StaysInvalidCredentials(t *testing.T) {
	t.Parallel()

	// The verification state must not be probeable with a bad password.
	fx := newSvcForTest(t)
	if _, err := fx.svc.Register(context.Background(), "alice@example.com", "Alice", strongPassword); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := fx.svc.Login(context.Background(), "alice@example.com", "Wr0ngPass!x")
	requireErrCode(t, err, "invalid_credentials")
}

func TestLogin_Success_IssuesBearerToken(t *testing.T) {
	t.Parallel()

	fx := newSvcForTest(t)
	registerAndVerify(t, fx, "alice@example.com")

	res, err := fx.svc.Login(context.Background(), "alice@example.com", strongPassword)
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if res.Token.AccessToken == "" {
		t.Fatalf("expected access token")
	}
	if res.Token.TokenType != "bearer" {
		t.Fatalf("expected bearer token type, got %q", res.Token.TokenType)
	}
	if res.Token.ExpiresIn != 30*60 {
		t.Fatalf("expected 1800s expiry, got %d", res.Token.ExpiresIn)
	}

	claims, err := fx.signer.Verify(res.Token.AccessToken)
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.Email != "alice@example.com" {
		t.Fatalf("token subject = %q", claims.Email)
	}
}

func TestLogin_RecordsLastLogin(t *testing.T) {
	t.Parallel()

	fx := newSvcForTest(t)
	registerAndVerify(t, fx, "alice@example.com")

	res, err := fx.svc.Login(context.Background(), "alice@example.com", strongPassword)
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if res.Account.LastLogin == nil {
		t.Fatalf("expected last_login set")
	}

	stored, err := fx.store.GetByID(context.Background(), res.Account.ID)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if stored.LastLogin == nil {
		t.Fatalf("expected last_login persisted")
	}
}
