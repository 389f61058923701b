package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{NotFound("no such row"), http.StatusNotFound},
		{Authentication("missing token"), http.StatusUnauthorized},
		{Store(errors.New("conn refused"), "query failed"), http.StatusInternalServerError},
		{Migration(nil, "already running"), http.StatusInternalServerError},
		{errors.New("plain error"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestUnwrapPreservesCause(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Store(cause, "insert failed")
	if !errors.Is(err, cause) {
		t.Error("wrapped cause lost")
	}

	wrapped := fmt.Errorf("handler: %w", err)
	if !IsNotFound(NotFound("gone")) {
		t.Error("IsNotFound on NotFound = false")
	}
	if IsNotFound(wrapped) {
		t.Error("IsNotFound on store error = true")
	}
	if KindOf(wrapped) != KindStore {
		t.Errorf("KindOf through fmt.Errorf = %v, want KindStore", KindOf(wrapped))
	}
}
