package services

import (
  "context"
  "fmt"
  "time"
  "gorm.io/gorm"
  "golang.org/x/crypto/bcrypt"
  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "github.com/yungbote/incontext-backend/internal/apierr"
  "github.com/yungbote/incontext-backend/internal/normalization"
  "github.com/yungbote/incontext-backend/internal/logger"
  "github.com/yungbote/incontext-backend/internal/types"
  "github.com/yungbote/incontext-backend/internal/repos"
  "github.com/yungbote/incontext-backend/internal/requestdata"
  "github.com/yungbote/incontext-backend/internal/utils"
)

type AuthService interface {
  RegisterUser(ctx context.Context, user *types.User) error
  LoginUser(ctx context.Context, username, password string) (string, string, error)
  RefreshUser(ctx context.Context) (string, string, error)
  LogoutUser(ctx context.Context) error
  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
  GetAccessTTL() time.Duration
}

type authService struct {
  db             *gorm.DB
  log            *logger.Logger
  userRepo       repos.UserRepo
  userTokenRepo  repos.UserTokenRepo
  jwtSecretKey   string
  accessTTL      time.Duration
  refreshTTL     time.Duration
}

func NewAuthService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  userTokenRepo repos.UserTokenRepo,
  jwtSecretKey string,
  accessTTL time.Duration,
  refreshTTL time.Duration,
) AuthService {
  serviceLog := log.With("service", "AuthService")
  return &authService{
    db:            db,
    log:           serviceLog,
    userRepo:      userRepo,
    userTokenRepo: userTokenRepo,
    jwtSecretKey:  jwtSecretKey,
    accessTTL:     accessTTL,
    refreshTTL:    refreshTTL,
  }
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) error {
  utils.NormalizeUserFields(ctx, user)
  if vErr := utils.RegisterInputValidation(ctx, as.userRepo, as.log, user); vErr != nil {
    return vErr
  }
  if hErr := utils.HashPassword(ctx, as.log, user); hErr != nil {
    return hErr
  }
  return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    user.ID = uuid.New()
    now := time.Now()
    user.CreatedAt = now
    user.UpdatedAt = now
    if _, ucErr := as.userRepo.Create(ctx, tx, []*types.User{user}); ucErr != nil {
      // The unique index can still fire under a concurrent register of
      // the same name; surface it the same way as the pre-check.
      as.log.Warn("Failed to create user", "error", ucErr)
      return apierr.Validation("User " + user.Username + " is already registered.")
    }
    return nil
  })
}

func (as *authService) LoginUser(ctx context.Context, username, password string) (string, string, error) {
  username = normalization.ParseUsername(username)
  password = normalization.ParseInputString(password)

  if vErr := utils.LoginInputValidation(ctx, as.log, username, password); vErr != nil {
    return "", "", vErr
  }

  users, usErr := as.userRepo.GetByUsernames(ctx, nil, []string{username})
  if usErr != nil {
    return "", "", fmt.Errorf("Error retrieving user by username: %w", usErr)
  }
  if len(users) == 0 {
    return "", "", apierr.Validation("Incorrect username.")
  }

  user := users[0]
  if hErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); hErr != nil {
    return "", "", apierr.Validation("Incorrect password.")
  }

  var accessToken string
  var refreshToken string
  if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    foundTokens, ftErr := as.userTokenRepo.GetByUserIDs(ctx, tx, []uuid.UUID{user.ID})
    if ftErr != nil {
      return fmt.Errorf("Failed to check user tokens: %w", ftErr)
    }
    for _, found := range foundTokens {
      if found != nil && found.ExpiresAt.Before(time.Now()) {
        if dtErr := as.userTokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{found.ID}); dtErr != nil {
          return fmt.Errorf("Failed to delete expired user token: %w", dtErr)
        }
      }
    }
    tok, genErr := as.generateAccessToken(user)
    if genErr != nil {
      return fmt.Errorf("Generate access token error: %w", genErr)
    }
    accessToken = tok
    refreshToken = uuid.New().String()
    userToken := types.UserToken{
      ID:            uuid.New(),
      UserID:        user.ID,
      AccessToken:   accessToken,
      RefreshToken:  refreshToken,
      ExpiresAt:     time.Now().Add(as.refreshTTL),
      CreatedAt:     time.Now(),
    }
    if _, ctErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&userToken}); ctErr != nil {
      as.log.Warn("Create User Token Error", "error", ctErr)
      return fmt.Errorf("Create User Token Error: %w", ctErr)
    }
    return nil
  }); err != nil {
    return "", "", err
  }
  return accessToken, refreshToken, nil
}

func (as *authService) RefreshUser(ctx context.Context) (string, string, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return "", "", apierr.Unauthorized("No request data found in context")
  }
  if rd.RefreshToken == "" {
    return "", "", apierr.Unauthorized("Refresh token not found in request data")
  }

  var accessToken string
  var newRefreshToken string
  err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    foundTokens, ftErr := as.userTokenRepo.GetByRefreshTokens(ctx, tx, []string{rd.RefreshToken})
    if ftErr != nil {
      return fmt.Errorf("Error fetching refresh token: %w", ftErr)
    }
    if len(foundTokens) == 0 {
      return apierr.Unauthorized("Refresh token not recognized")
    }
    existingToken := foundTokens[0]
    if existingToken.ExpiresAt.Before(time.Now()) {
      if dtErr := as.userTokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{existingToken.ID}); dtErr != nil {
        return fmt.Errorf("Refresh token expired, error deleting: %w", dtErr)
      }
      return apierr.Unauthorized("Refresh token expired")
    }
    users, uErr := as.userRepo.GetByIDs(ctx, tx, []uuid.UUID{existingToken.UserID})
    if uErr != nil {
      return fmt.Errorf("Failed to load user for refresh: %w", uErr)
    }
    if len(users) == 0 {
      return apierr.Unauthorized("No user found for the given refresh token")
    }
    user := users[0]
    tok, genErr := as.generateAccessToken(user)
    if genErr != nil {
      return fmt.Errorf("Failed to generate new access token: %w", genErr)
    }
    accessToken = tok
    newRefreshToken = uuid.New().String()
    if dtErr := as.userTokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{existingToken.ID}); dtErr != nil {
      return fmt.Errorf("Failed to rotate refresh token: %w", dtErr)
    }
    userToken := types.UserToken{
      ID:            uuid.New(),
      UserID:        user.ID,
      AccessToken:   accessToken,
      RefreshToken:  newRefreshToken,
      ExpiresAt:     time.Now().Add(as.refreshTTL),
      CreatedAt:     time.Now(),
    }
    if _, ctErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&userToken}); ctErr != nil {
      return fmt.Errorf("Create User Token Error: %w", ctErr)
    }
    return nil
  })
  if err != nil {
    return "", "", err
  }
  return accessToken, newRefreshToken, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return apierr.Unauthorized("No request data found in context")
  }
  return as.userTokenRepo.DeleteByUserIDs(ctx, nil, []uuid.UUID{rd.UserID})
}

// SetContextFromToken validates the access token and threads the
// authenticated caller through the request context.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  claims := jwt.MapClaims{}
  token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
    if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("Unexpected signing method: %v", t.Header["alg"])
    }
    return []byte(as.jwtSecretKey), nil
  })
  if err != nil || !token.Valid {
    return ctx, apierr.Unauthorized("Invalid or expired token")
  }
  rawUserID, ok := claims["user_id"].(string)
  if !ok {
    return ctx, apierr.Unauthorized("Token missing user id")
  }
  userID, err := uuid.Parse(rawUserID)
  if err != nil {
    return ctx, apierr.Unauthorized("Token carries malformed user id")
  }
  users, uErr := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
  if uErr != nil {
    return ctx, fmt.Errorf("Failed to load user for token: %w", uErr)
  }
  if len(users) == 0 {
    return ctx, apierr.Unauthorized("User for token no longer exists")
  }
  user := users[0]
  rd := &requestdata.RequestData{
    TokenString:  tokenString,
    UserID:       user.ID,
    Username:     user.Username,
    Admin:        user.Admin,
  }
  return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
  return as.accessTTL
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
  now := time.Now()
  claims := jwt.MapClaims{
    "user_id":  user.ID.String(),
    "username": user.Username,
    "admin":    user.Admin,
    "iat":      now.Unix(),
    "exp":      now.Add(as.accessTTL).Unix(),
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  return token.SignedString([]byte(as.jwtSecretKey))
}
