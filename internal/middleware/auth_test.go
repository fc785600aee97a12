package middleware

import (
  "context"
  "net/http"
  "net/http/httptest"
  "testing"
  "time"

  "github.com/gin-gonic/gin"
  "github.com/yungbote/incontext-backend/internal/repos"
  "github.com/yungbote/incontext-backend/internal/repos/testutil"
  "github.com/yungbote/incontext-backend/internal/requestdata"
  "github.com/yungbote/incontext-backend/internal/services"
  "github.com/yungbote/incontext-backend/internal/types"
)

func newTestAuth(t *testing.T) (*AuthMiddleware, services.AuthService) {
  t.Helper()
  gin.SetMode(gin.TestMode)
  db := testutil.DB(t)
  log := testutil.Logger(t)
  userRepo := repos.NewUserRepo(db, log)
  userTokenRepo := repos.NewUserTokenRepo(db, log)
  authService := services.NewAuthService(db, log, userRepo, userTokenRepo, "test-secret", time.Hour, 24*time.Hour)
  return NewAuthMiddleware(log, authService), authService
}

func registerAndLogin(t *testing.T, authService services.AuthService, username string) string {
  t.Helper()
  ctx := context.Background()
  user := &types.User{Username: username, Password: "hunter22"}
  if err := authService.RegisterUser(ctx, user); err != nil {
    t.Fatalf("register: %v", err)
  }
  access, _, err := authService.LoginUser(ctx, username, "hunter22")
  if err != nil {
    t.Fatalf("login: %v", err)
  }
  return access
}

func TestRequireAuth(t *testing.T) {
  am, authService := newTestAuth(t)
  access := registerAndLogin(t, authService, "alice")

  router := gin.New()
  router.GET("/me", am.RequireAuth(), func(c *gin.Context) {
    rd := requestdata.GetRequestData(c.Request.Context())
    c.JSON(http.StatusOK, gin.H{"username": rd.Username})
  })

  cases := []struct {
    name       string
    header     string
    query      string
    wantStatus int
  }{
    {name: "missing_token", wantStatus: http.StatusUnauthorized},
    {name: "malformed_header", header: "Token abc", wantStatus: http.StatusUnauthorized},
    {name: "garbage_token", header: "Bearer not-a-jwt", wantStatus: http.StatusUnauthorized},
    {name: "bearer_header", header: "Bearer " + access, wantStatus: http.StatusOK},
    {name: "query_token", query: "?token=" + access, wantStatus: http.StatusOK},
  }
  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      req := httptest.NewRequest(http.MethodGet, "/me"+tc.query, nil)
      if tc.header != "" {
        req.Header.Set("Authorization", tc.header)
      }
      w := httptest.NewRecorder()
      router.ServeHTTP(w, req)
      if w.Code != tc.wantStatus {
        t.Fatalf("status=%d, want %d (body=%s)", w.Code, tc.wantStatus, w.Body.String())
      }
    })
  }
}

func TestRequireAdmin(t *testing.T) {
  am, authService := newTestAuth(t)
  access := registerAndLogin(t, authService, "alice")

  router := gin.New()
  router.POST("/restricted", am.RequireAuth(), am.RequireAdmin(), func(c *gin.Context) {
    c.Status(http.StatusCreated)
  })

  req := httptest.NewRequest(http.MethodPost, "/restricted", nil)
  req.Header.Set("Authorization", "Bearer "+access)
  w := httptest.NewRecorder()
  router.ServeHTTP(w, req)
  if w.Code != http.StatusForbidden {
    t.Fatalf("status=%d, want 403", w.Code)
  }
}

func TestWithRefreshToken(t *testing.T) {
  am, _ := newTestAuth(t)

  router := gin.New()
  router.POST("/refresh", am.WithRefreshToken(), func(c *gin.Context) {
    rd := requestdata.GetRequestData(c.Request.Context())
    c.JSON(http.StatusOK, gin.H{"refresh_token": rd.RefreshToken})
  })

  req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
  w := httptest.NewRecorder()
  router.ServeHTTP(w, req)
  if w.Code != http.StatusUnauthorized {
    t.Fatalf("missing refresh token: status=%d, want 401", w.Code)
  }

  req = httptest.NewRequest(http.MethodPost, "/refresh", nil)
  req.Header.Set("X-Refresh-Token", "abc-123")
  w = httptest.NewRecorder()
  router.ServeHTTP(w, req)
  if w.Code != http.StatusOK {
    t.Fatalf("status=%d, want 200", w.Code)
  }
}
