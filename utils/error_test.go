package utils

import (
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid", NewInvalidArgument("bad amount"), http.StatusBadRequest},
		{"forbidden", NewForbidden("not yours"), http.StatusForbidden},
		{"conflict", NewConflict("locked"), http.StatusConflict},
		{"not found", NewNotFound("no thread"), http.StatusNotFound},
		{"wrapped", fmt.Errorf("accept: %w", NewConflict("locked")), http.StatusConflict},
		{"plain", fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Fatalf("HTTPStatus = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConvertAmount(t *testing.T) {
	if got := ConvertAmount(450, 1.08); got != 486 {
		t.Fatalf("ConvertAmount(450, 1.08) = %v, want 486", got)
	}
	if got := RoundAmount(0.125); got != 0.13 {
		t.Fatalf("RoundAmount(0.125) = %v", got)
	}
}
