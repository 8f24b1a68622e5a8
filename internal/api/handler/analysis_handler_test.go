package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/hydrai/telemetry-system/internal/core/domain"
)

type stubAnalysisService struct {
	analyzeFn func(ctx context.Context, userID string) (string, error)
}

func (s *stubAnalysisService) Analyze(ctx context.Context, userID string) (string, error) {
	return s.analyzeFn(ctx, userID)
}

func TestAnalysisHandler_Success(t *testing.T) {
	svc := &stubAnalysisService{
		analyzeFn: func(_ context.Context, userID string) (string, error) {
			if userID != "user-1" {
				t.Fatalf("expected user-1, got %s", userID)
			}
			return "drink less water", nil
		},
	}
	h := NewAnalysisHandler(svc)

	c, rec := newMeterTestContext(t, http.MethodPost, "/api/analysis",
		`{"user_id":"user-1"}`, &domain.User{ID: "user-1"})
	if err := h.Analyze(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["analysis"] != "drink less water" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAnalysisHandler_MismatchedIdentity(t *testing.T) {
	svc := &stubAnalysisService{
		analyzeFn: func(context.Context, string) (string, error) {
			t.Fatalf("service should not be called")
			return "", nil
		},
	}
	h := NewAnalysisHandler(svc)

	// Authenticated as user-1, asking for user-2's data: an explicit
	// ownership failure, not an authentication one.
	c, _ := newMeterTestContext(t, http.MethodPost, "/api/analysis",
		`{"user_id":"user-2"}`, &domain.User{ID: "user-1"})
	if err := h.Analyze(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAnalysisHandler_GeneratorFailure(t *testing.T) {
	svc := &stubAnalysisService{
		analyzeFn: func(context.Context, string) (string, error) {
			return "", domain.ErrGeneratorUnavailable
		},
	}
	h := NewAnalysisHandler(svc)

	c, _ := newMeterTestContext(t, http.MethodPost, "/api/analysis",
		`{"user_id":"user-1"}`, &domain.User{ID: "user-1"})
	if err := h.Analyze(c); !errors.Is(err, domain.ErrGeneratorUnavailable) {
		t.Fatalf("expected ErrGeneratorUnavailable, got %v", err)
	}
}
