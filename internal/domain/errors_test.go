package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	err := &APIError{Status: 422, Message: "name is required"}
	if got := err.Error(); got != "api error 422: name is required" {
		t.Errorf("Error() = %q", got)
	}
}

func TestAPIError_SentinelMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		target error
		want   bool
	}{
		{404, ErrNotFound, true},
		{404, ErrValidation, false},
		{400, ErrValidation, true},
		{422, ErrValidation, true},
		{500, ErrNotFound, false},
		{500, ErrValidation, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.status), func(t *testing.T) {
			t.Parallel()
			err := &APIError{Status: tt.status, Message: "x"}
			if got := errors.Is(err, tt.target); got != tt.want {
				t.Errorf("errors.Is(%d, %v) = %v, want %v", tt.status, tt.target, got, tt.want)
			}
		})
	}
}

func TestIsCancellation(t *testing.T) {
	t.Parallel()

	if !IsCancellation(context.Canceled) {
		t.Error("IsCancellation(context.Canceled) = false")
	}
	if !IsCancellation(fmt.Errorf("GET /projects: %w", context.DeadlineExceeded)) {
		t.Error("IsCancellation(wrapped deadline) = false")
	}
	if IsCancellation(&APIError{Status: 500, Message: "boom"}) {
		t.Error("IsCancellation(server error) = true")
	}
	if IsCancellation(nil) {
		t.Error("IsCancellation(nil) = true")
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Fields: map[string]string{"name": MsgRequired}}
	if !errors.Is(err, ErrValidation) {
		t.Error("ValidationError does not unwrap to ErrValidation")
	}
	if !strings.Contains(err.Error(), "name: is required") {
		t.Errorf("Error() = %q, want field detail", err.Error())
	}
}

func TestOptimisticID(t *testing.T) {
	t.Parallel()

	id := NewOptimisticID()
	if !IsOptimisticID(id) {
		t.Errorf("IsOptimisticID(%q) = false", id)
	}
	if IsOptimisticID("8f14e45f-ceea-167a-5a36-dedd4bea2543") {
		t.Error("IsOptimisticID(server uuid) = true")
	}
	if NewOptimisticID() == id {
		t.Error("NewOptimisticID() returned a duplicate")
	}
}
