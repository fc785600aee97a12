package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusAndCode(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "not_found", err: NotFound("list"), wantStatus: http.StatusNotFound, wantCode: "not_found"},
		{name: "forbidden", err: Forbidden("not yours"), wantStatus: http.StatusForbidden, wantCode: "forbidden"},
		{name: "not_related", err: NotRelated("item"), wantStatus: http.StatusBadRequest, wantCode: "not_related"},
		{name: "validation", err: Validation("Name is required."), wantStatus: http.StatusBadRequest, wantCode: "validation_failed"},
		{name: "unauthorized", err: Unauthorized("token expired"), wantStatus: http.StatusUnauthorized, wantCode: "unauthorized"},
		{name: "wrapped", err: fmt.Errorf("Failed to fetch list: %w", NotFound("list")), wantStatus: http.StatusNotFound, wantCode: "not_found"},
		{name: "plain_error", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: "internal_error"},
		{name: "nil", err: nil, wantStatus: http.StatusInternalServerError, wantCode: "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StatusOf(tc.err); got != tc.wantStatus {
				t.Fatalf("StatusOf=%d, want %d", got, tc.wantStatus)
			}
			if got := CodeOf(tc.err); got != tc.wantCode {
				t.Fatalf("CodeOf=%q, want %q", got, tc.wantCode)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	if got := Validation("Name is required.").Error(); got != "Name is required." {
		t.Fatalf("Error()=%q", got)
	}
	if got := NotFound("item").Error(); got != "item not found" {
		t.Fatalf("Error()=%q", got)
	}
}
