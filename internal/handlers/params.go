package handlers

import (
  "fmt"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
)

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
  raw := c.Param(name)
  id, err := uuid.Parse(raw)
  if err != nil {
    return uuid.Nil, fmt.Errorf("Invalid %s: %q", name, raw)
  }
  return id, nil
}

func parseUUIDParamValue(raw, name string) (uuid.UUID, error) {
  id, err := uuid.Parse(raw)
  if err != nil {
    return uuid.Nil, fmt.Errorf("Invalid %s: %q", name, raw)
  }
  return id, nil
}

// parseContentMap converts the submitted detail-id keyed form values
// into uuid keys, rejecting malformed ids early.
func parseContentMap(raw map[string]string) (map[uuid.UUID]string, error) {
  content := make(map[uuid.UUID]string, len(raw))
  for key, value := range raw {
    id, err := uuid.Parse(key)
    if err != nil {
      return nil, fmt.Errorf("Invalid detail id: %q", key)
    }
    content[id] = value
  }
  return content, nil
}
