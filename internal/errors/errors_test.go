package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name      string
		code      ErrorCode
		message   string
		cause     error
		wantParts []string
	}{
		{
			name:      "with cause",
			code:      CatalogUnavailable,
			message:   "read restaurants",
			cause:     errors.New("permission denied"),
			wantParts: []string{"CATALOG_UNAVAILABLE", "read restaurants", "permission denied"},
		},
		{
			name:      "without cause",
			code:      ItemNotFound,
			message:   "item 12 not found",
			wantParts: []string{"ITEM_NOT_FOUND", "item 12 not found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.code, tt.message, tt.cause).Error()
			for _, part := range tt.wantParts {
				if !strings.Contains(got, part) {
					t.Errorf("Error() = %q, want to contain %q", got, part)
				}
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := New(InternalError, "wrapped", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if New(InternalError, "bare", nil).Unwrap() != nil {
		t.Error("Unwrap() without cause should be nil")
	}
}

func TestAppError_IsMatchesCode(t *testing.T) {
	err := fmt.Errorf("lookup: %w", Newf(RestaurantNotFound, "restaurant %q", "Nowhere"))

	if !errors.Is(err, New(RestaurantNotFound, "", nil)) {
		t.Error("errors.Is should match on code through wrapping")
	}
	if errors.Is(err, New(ItemNotFound, "", nil)) {
		t.Error("errors.Is should not match a different code")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"app error", New(InvalidOrder, "bad json", nil), InvalidOrder},
		{"wrapped app error", fmt.Errorf("ctx: %w", New(RateLimited, "slow down", nil)), RateLimited},
		{"plain error", errors.New("plain"), InternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %v, want %v", got, tt.want)
			}
		})
	}

	if HasCode(nil, InternalError) {
		t.Error("HasCode(nil) should be false")
	}
}

func TestWithDetails(t *testing.T) {
	err := New(ItemNotFound, "missing", nil).WithDetails(map[string]string{"id": "4"})
	details, ok := err.Details.(map[string]string)
	if !ok || details["id"] != "4" {
		t.Errorf("Details = %#v, want id=4", err.Details)
	}
}
