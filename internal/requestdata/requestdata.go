package requestdata

import (
  "context"
  "github.com/google/uuid"
)

type requestDataKey struct{}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
  return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
  val := ctx.Value(requestDataKey{})
  if rd, ok := val.(*RequestData); ok {
    return rd
  }
  return nil
}

// RequestData is the authenticated caller, threaded through every
// service call instead of an ambient global.
type RequestData struct {
  TokenString   string
  RefreshToken  string
  UserID        uuid.UUID
  Username      string
  Admin         bool
}
