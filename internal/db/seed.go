package db

import (
  "fmt"
  "os"
  "time"
  "gopkg.in/yaml.v3"
  "golang.org/x/crypto/bcrypt"
  "github.com/google/uuid"
  "github.com/yungbote/incontext-backend/internal/normalization"
  "github.com/yungbote/incontext-backend/internal/types"
  "github.com/yungbote/incontext-backend/internal/utils"
)

type seedAgentModel struct {
  ProviderName   string   `yaml:"provider_name"`
  ProviderCode   string   `yaml:"provider_code"`
  ModelName      string   `yaml:"model_name"`
  ModelCode      string   `yaml:"model_code"`
  Description    string   `yaml:"description"`
}

type seedFile struct {
  AgentModels   []seedAgentModel   `yaml:"agent_models"`
}

// SeedAll bootstraps the admin account and the agent model catalog.
// Both are idempotent: existing rows are left alone so restarting the
// process does not duplicate the catalog.
func (s *DBService) SeedAll() error {
  if err := s.seedAdmin(); err != nil {
    return err
  }
  return s.seedAgentModels()
}

func (s *DBService) seedAdmin() error {
  username := normalization.ParseUsername(utils.GetEnv("IC_ADMIN_USERNAME", "admin", s.log))
  password := utils.GetEnv("IC_ADMIN_PASSWORD", "", s.log)
  if password == "" {
    s.log.Warn("IC_ADMIN_PASSWORD not set, skipping admin seed")
    return nil
  }

  var count int64
  if err := s.db.Model(&types.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
    return fmt.Errorf("Failed to check for existing admin: %w", err)
  }
  if count > 0 {
    return nil
  }

  hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
  if err != nil {
    return fmt.Errorf("Failed to hash admin password: %w", err)
  }
  now := time.Now()
  admin := types.User{
    ID:          uuid.New(),
    Username:    username,
    Password:    string(hashed),
    Admin:       true,
    CreatedAt:   now,
    UpdatedAt:   now,
  }
  if err := s.db.Create(&admin).Error; err != nil {
    return fmt.Errorf("Failed to seed admin user: %w", err)
  }
  s.log.Info("Seeded admin user", "username", username)
  return nil
}

func (s *DBService) seedAgentModels() error {
  path := utils.GetEnv("AGENT_MODELS_PATH", "config/agent_models.yaml", s.log)
  raw, err := os.ReadFile(path)
  if err != nil {
    if os.IsNotExist(err) {
      s.log.Warn("Agent models file not found, skipping agent model seed", "path", path)
      return nil
    }
    return fmt.Errorf("Failed to read agent models file: %w", err)
  }
  var parsed seedFile
  if err := yaml.Unmarshal(raw, &parsed); err != nil {
    return fmt.Errorf("Failed to parse agent models file: %w", err)
  }

  seeded := 0
  for _, m := range parsed.AgentModels {
    var count int64
    if err := s.db.Model(&types.AgentModel{}).Where("model_code = ?", m.ModelCode).Count(&count).Error; err != nil {
      return fmt.Errorf("Failed to check agent model %q: %w", m.ModelCode, err)
    }
    if count > 0 {
      continue
    }
    row := types.AgentModel{
      ID:             uuid.New(),
      ProviderName:   m.ProviderName,
      ProviderCode:   m.ProviderCode,
      ModelName:      m.ModelName,
      ModelCode:      m.ModelCode,
      Description:    m.Description,
      CreatedAt:      time.Now(),
    }
    if err := s.db.Create(&row).Error; err != nil {
      return fmt.Errorf("Failed to seed agent model %q: %w", m.ModelCode, err)
    }
    seeded++
  }
  s.log.Info("Seeded agent models", "seeded", seeded, "total", len(parsed.AgentModels))
  return nil
}
