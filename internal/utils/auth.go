package utils

import (
  "context"
  "golang.org/x/crypto/bcrypt"
  "github.com/yungbote/incontext-backend/internal/apierr"
  "github.com/yungbote/incontext-backend/internal/normalization"
  "github.com/yungbote/incontext-backend/internal/logger"
  "github.com/yungbote/incontext-backend/internal/repos"
  "github.com/yungbote/incontext-backend/internal/types"
)

func RegisterInputValidation(ctx context.Context, userRepo repos.UserRepo, log *logger.Logger, user *types.User) error {
  if user == nil {
    return apierr.Validation("No user given, cannot proceed with registration")
  }
  if user.Username == "" {
    return apierr.Validation("Username is required.")
  }
  if user.Password == "" {
    return apierr.Validation("Password is required.")
  }
  exists, err := userRepo.UsernameExists(ctx, nil, user.Username)
  if err != nil {
    return err
  }
  if exists {
    return apierr.Validation("User " + user.Username + " is already registered.")
  }
  return nil
}

func LoginInputValidation(ctx context.Context, log *logger.Logger, username, password string) error {
  if username == "" {
    return apierr.Validation("Username is required.")
  }
  if password == "" {
    return apierr.Validation("Password is required.")
  }
  return nil
}

func HashPassword(ctx context.Context, log *logger.Logger, user *types.User) error {
  hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
  if err != nil {
    return apierr.Validation("Failed to hash password")
  }
  user.Password = string(hashedPassword)
  return nil
}

func NormalizeUserFields(ctx context.Context, user *types.User) {
  user.Username = normalization.ParseUsername(user.Username)
  user.Password = normalization.ParseInputString(user.Password)
}
