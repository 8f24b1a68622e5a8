package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hydrai/telemetry-system/internal/core/domain"
	"github.com/hydrai/telemetry-system/pkg/logger"
)

type stubGenerator struct {
	response string
	err      error
	prompts  []string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

type stubCache struct {
	entries map[string]string
	getErr  error
	setErr  error
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]string)}
}

func (c *stubCache) Get(_ context.Context, userID string) (string, bool, error) {
	if c.getErr != nil {
		return "", false, c.getErr
	}
	text, ok := c.entries[userID]
	return text, ok, nil
}

func (c *stubCache) Set(_ context.Context, userID, text string) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[userID] = text
	return nil
}

func newTestAnalysisService(repo *stubMeterRepo, gen *stubGenerator, cache *stubCache) *AnalysisService {
	return NewAnalysisService(repo, gen, cache, logger.Init(logger.Options{Level: "error"}))
}

func TestAnalysisService_GeneratesAndCaches(t *testing.T) {
	repo := newStubMeterRepo()
	repo.meters["m1"] = &domain.Meter{
		ID:      "m1",
		OwnerID: "user-1",
		Name:    "kitchen",
		Type:    "ultrasonic",
		Status:  domain.MeterActive,
		Measurements: []domain.Measurement{
			{TotalConsumption: 10, LeakEvent: true},
			{TotalConsumption: 5},
		},
	}
	gen := &stubGenerator{response: "fix the kitchen leak"}
	cache := newStubCache()
	svc := newTestAnalysisService(repo, gen, cache)

	text, err := svc.Analyze(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if text != "fix the kitchen leak" {
		t.Fatalf("unexpected analysis: %q", text)
	}
	if len(gen.prompts) != 1 {
		t.Fatalf("expected one generator call, got %d", len(gen.prompts))
	}
	prompt := gen.prompts[0]
	if !strings.Contains(prompt, "kitchen") || !strings.Contains(prompt, "15.00") || !strings.Contains(prompt, "leak detected: yes") {
		t.Fatalf("prompt missing meter summary: %q", prompt)
	}
	if cache.entries["user-1"] != "fix the kitchen leak" {
		t.Fatalf("result not cached")
	}
}

func TestAnalysisService_CacheHitSkipsGenerator(t *testing.T) {
	gen := &stubGenerator{response: "fresh"}
	cache := newStubCache()
	cache.entries["user-1"] = "cached analysis"
	svc := newTestAnalysisService(newStubMeterRepo(), gen, cache)

	text, err := svc.Analyze(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if text != "cached analysis" {
		t.Fatalf("expected cached analysis, got %q", text)
	}
	if len(gen.prompts) != 0 {
		t.Fatalf("generator should not be called on cache hit")
	}
}

func TestAnalysisService_CacheFailureDegrades(t *testing.T) {
	gen := &stubGenerator{response: "ok"}
	cache := newStubCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	svc := newTestAnalysisService(newStubMeterRepo(), gen, cache)

	text, err := svc.Analyze(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("broken cache must not fail the request: %v", err)
	}
	if text != "ok" {
		t.Fatalf("unexpected analysis: %q", text)
	}
}

func TestAnalysisService_GeneratorFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("upstream 500")}
	svc := newTestAnalysisService(newStubMeterRepo(), gen, newStubCache())

	if _, err := svc.Analyze(context.Background(), "user-1"); !errors.Is(err, domain.ErrGeneratorUnavailable) {
		t.Fatalf("expected ErrGeneratorUnavailable, got %v", err)
	}
}

func TestAnalysisService_NoMetersPrompt(t *testing.T) {
	gen := &stubGenerator{response: "register a meter first"}
	svc := newTestAnalysisService(newStubMeterRepo(), gen, newStubCache())

	if _, err := svc.Analyze(context.Background(), "user-1"); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if !strings.Contains(gen.prompts[0], "no flow meters") {
		t.Fatalf("expected empty-state prompt, got %q", gen.prompts[0])
	}
}
