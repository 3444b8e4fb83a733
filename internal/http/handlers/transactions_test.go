package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wallettally/internal/repository"
	"wallettally/internal/service"

	"github.com/gin-gonic/gin"
)

func TestRespondMutationError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"locked after 24h", service.ErrLocked, http.StatusLocked},
		{"not the owner", service.ErrForbidden, http.StatusForbidden},
		{"missing record", repository.ErrNotFound, http.StatusNotFound},
		{"overdraft", service.ErrInsufficientFunds, http.StatusUnprocessableEntity},
		{"bad amount", service.ErrInvalidAmount, http.StatusBadRequest},
		{"bad type", service.ErrInvalidType, http.StatusBadRequest},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		respondMutationError(c, tc.err)
		if w.Code != tc.code {
			t.Errorf("%s: got %d; want %d", tc.name, w.Code, tc.code)
		}
	}
}

func TestParseMonth(t *testing.T) {
	got, err := parseMonth("2025-03")
	if err != nil {
		t.Fatalf("parseMonth: %v", err)
	}
	want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v; want %v", got, want)
	}

	if _, err := parseMonth("march"); err == nil {
		t.Fatal("expected error for invalid month")
	}

	// empty defaults to the current month, day one
	now, err := parseMonth("")
	if err != nil {
		t.Fatalf("parseMonth(\"\"): %v", err)
	}
	if now.Day() != 1 {
		t.Errorf("default month should start on day 1, got %d", now.Day())
	}
}
