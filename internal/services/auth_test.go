package services

import (
	"context"
	"strings"
	"testing"

	"github.com/yungbote/incontext-backend/internal/requestdata"
	"github.com/yungbote/incontext-backend/internal/types"
)

func TestRegisterLoginRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := &types.User{Username: "  Alice ", Password: "secret"}
	if err := env.authService.RegisterUser(ctx, user); err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("username=%q, want normalized alice", user.Username)
	}
	if user.Password == "secret" {
		t.Fatal("password stored in clear")
	}

	access, refresh, err := env.authService.LoginUser(ctx, "ALICE", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("empty tokens after login")
	}

	authedCtx, err := env.authService.SetContextFromToken(ctx, access)
	if err != nil {
		t.Fatalf("set context from token: %v", err)
	}
	rd := requestdata.GetRequestData(authedCtx)
	if rd == nil || rd.Username != "alice" || rd.Admin {
		t.Fatalf("unexpected request data: %+v", rd)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := &types.User{Username: "alice", Password: "secret"}
	if err := env.authService.RegisterUser(ctx, first); err != nil {
		t.Fatalf("register: %v", err)
	}
	second := &types.User{Username: "alice", Password: "other"}
	err := env.authService.RegisterUser(ctx, second)
	if err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
	if !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := &types.User{Username: "alice", Password: "secret"}
	if err := env.authService.RegisterUser(ctx, user); err != nil {
		t.Fatalf("register: %v", err)
	}

	cases := []struct {
		name     string
		username string
		password string
		want     string
	}{
		{name: "unknown_user", username: "bob", password: "secret", want: "Incorrect username."},
		{name: "wrong_password", username: "alice", password: "nope", want: "Incorrect password."},
		{name: "missing_password", username: "alice", password: "", want: "Password is required."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := env.authService.LoginUser(ctx, tc.username, tc.password)
			if err == nil || err.Error() != tc.want {
				t.Fatalf("err=%v, want %q", err, tc.want)
			}
		})
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := &types.User{Username: "alice", Password: "secret"}
	if err := env.authService.RegisterUser(ctx, user); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, refresh, err := env.authService.LoginUser(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	rctx := requestdata.WithRequestData(ctx, &requestdata.RequestData{RefreshToken: refresh})
	newAccess, newRefresh, err := env.authService.RefreshUser(rctx)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if newAccess == "" || newRefresh == "" || newRefresh == refresh {
		t.Fatal("refresh did not rotate tokens")
	}

	// The old refresh token is spent.
	if _, _, err := env.authService.RefreshUser(rctx); err == nil {
		t.Fatal("expected spent refresh token to be rejected")
	}
}
