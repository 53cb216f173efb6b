package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/imc/imc-api/internal/domain/user"
	"github.com/imc/imc-api/internal/pkg/jwt"
	"github.com/imc/imc-api/internal/pkg/password"
)

type fakeUserRepo struct {
	byEmail     map[string]*user.User
	byID        map[uuid.UUID]*user.User
	created     *user.User
	createErr   error
	lastLoginIP string
}

func newFakeUserRepo(users ...*user.User) *fakeUserRepo {
	f := &fakeUserRepo{
		byEmail: map[string]*user.User{},
		byID:    map[uuid.UUID]*user.User{},
	}
	for _, u := range users {
		f.byEmail[u.Email] = u
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = u
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

func (f *fakeUserRepo) List(ctx context.Context, role, search string, limit, offset int) ([]*user.User, int, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	if u, ok := f.byID[id]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, ip string) error {
	f.lastLoginIP = ip
	return nil
}

func (f *fakeUserRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error { return nil }

func testJWT() *jwt.Service {
	return jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)
}

func existingUser(t *testing.T, email, pass string) *user.User {
	t.Helper()
	hash, err := password.Hash(pass)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &user.User{
		ID:           uuid.New(),
		Email:        email,
		FirstName:    "Priya",
		LastName:     "Nair",
		PasswordHash: hash,
		Role:         user.RoleCustomer,
		IsActive:     true,
	}
}

func TestRegister(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, testJWT(), nil)

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Email:     "  New@Example.COM ",
		Password:  "secret123",
		FirstName: "Priya",
		LastName:  "Nair",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if repo.created == nil {
		t.Fatal("expected user persisted")
	}
	if repo.created.Email != "new@example.com" {
		t.Errorf("email not normalized: %s", repo.created.Email)
	}
	if repo.created.Role != user.RoleCustomer {
		t.Errorf("role = %s, want customer", repo.created.Role)
	}
	if repo.created.PasswordHash == "secret123" {
		t.Error("password stored in plaintext")
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Error("expected token pair in response")
	}
	if resp.Tokens.TokenType != "Bearer" {
		t.Errorf("token type = %s", resp.Tokens.TokenType)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	u := existingUser(t, "taken@example.com", "secret123")
	svc := NewService(newFakeUserRepo(u), testJWT(), nil)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Email:     "Taken@example.com",
		Password:  "whatever1",
		FirstName: "Dup",
		LastName:  "User",
	})
	if err != ErrEmailAlreadyExists {
		t.Fatalf("err = %v, want ErrEmailAlreadyExists", err)
	}
}

func TestLogin(t *testing.T) {
	u := existingUser(t, "priya@example.com", "secret123")
	repo := newFakeUserRepo(u)
	svc := NewService(repo, testJWT(), nil)

	tests := []struct {
		name     string
		email    string
		pass     string
		inactive bool
		wantErr  error
	}{
		{"valid credentials", "priya@example.com", "secret123", false, nil},
		{"case-insensitive email", "PRIYA@example.com", "secret123", false, nil},
		{"wrong password", "priya@example.com", "nope-nope", false, ErrInvalidCredentials},
		{"unknown email", "ghost@example.com", "secret123", false, ErrInvalidCredentials},
		{"inactive account", "priya@example.com", "secret123", true, ErrAccountInactive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u.IsActive = !tt.inactive
			resp, err := svc.Login(context.Background(), &LoginRequest{Email: tt.email, Password: tt.pass}, "203.0.113.9")
			if err != tt.wantErr {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				if resp.Tokens.AccessToken == "" {
					t.Error("expected access token")
				}
				if repo.lastLoginIP != "203.0.113.9" {
					t.Errorf("last login ip = %q", repo.lastLoginIP)
				}
			}
		})
	}
}

func TestLoginIssuesValidAccessToken(t *testing.T) {
	u := existingUser(t, "priya@example.com", "secret123")
	jwtSvc := testJWT()
	svc := NewService(newFakeUserRepo(u), jwtSvc, nil)

	resp, err := svc.Login(context.Background(), &LoginRequest{Email: u.Email, Password: "secret123"}, "")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims, err := jwtSvc.ValidateAccessToken(resp.Tokens.AccessToken)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.UserID != u.ID {
		t.Errorf("claims user = %s, want %s", claims.UserID, u.ID)
	}
	if claims.Role != string(user.RoleCustomer) {
		t.Errorf("claims role = %s", claims.Role)
	}
}

func TestRefreshWithoutRedis(t *testing.T) {
	// Without a token store refresh tokens cannot be verified as live,
	// so rotation is refused outright.
	u := existingUser(t, "priya@example.com", "secret123")
	jwtSvc := testJWT()
	svc := NewService(newFakeUserRepo(u), jwtSvc, nil)

	token, _, _, err := jwtSvc.GenerateRefreshToken(u.ID)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), token); err != ErrInvalidRefreshToken {
		t.Fatalf("err = %v, want ErrInvalidRefreshToken", err)
	}
	if _, err := svc.Refresh(context.Background(), ""); err != ErrRefreshTokenRequired {
		t.Fatalf("err = %v, want ErrRefreshTokenRequired", err)
	}
	if _, err := svc.Refresh(context.Background(), "not-a-jwt"); err != ErrInvalidRefreshToken {
		t.Fatalf("err = %v, want ErrInvalidRefreshToken", err)
	}
}

func TestChangePassword(t *testing.T) {
	u := existingUser(t, "priya@example.com", "secret123")
	repo := newFakeUserRepo(u)
	svc := NewService(repo, testJWT(), nil)

	err := svc.ChangePassword(context.Background(), u.ID, &ChangePasswordRequest{
		CurrentPassword: "wrong-pass",
		NewPassword:     "newsecret1",
	})
	if err != ErrInvalidCredentials {
		t.Fatalf("wrong current password: err = %v, want ErrInvalidCredentials", err)
	}

	err = svc.ChangePassword(context.Background(), u.ID, &ChangePasswordRequest{
		CurrentPassword: "secret123",
		NewPassword:     "newsecret1",
	})
	if err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if !password.Verify("newsecret1", u.PasswordHash) {
		t.Error("new password not stored")
	}
}
