package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/quizify/internal/store"
)

type purposeKey struct{}

// WithPurpose tags ctx with the reason for a generation call. The tag ends
// up in the audit log so calls can be filtered by feature.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the purpose set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok && p != "" {
		return p
	}
	return "unknown"
}

// LoggingProvider appends every call, successful or not, to the audit log.
// A failed append is logged and otherwise ignored.
type LoggingProvider struct {
	inner    Provider
	provider string
	repo     store.EventRepo
}

// WithLogging records calls made through p under providerName ("groq",
// "openai", ...).
func WithLogging(p Provider, providerName string, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, provider: providerName, repo: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	event := l.event(PurposeFrom(ctx), req, resp, err)
	event.LatencyMs = time.Since(start).Milliseconds()

	if logErr := l.repo.AppendLLMRequest(context.WithoutCancel(ctx), event); logErr != nil {
		slog.Warn("record generation call", "purpose", event.Purpose, "error", logErr)
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func (l *LoggingProvider) event(purpose string, req Request, resp *Response, err error) store.LLMRequestEventData {
	e := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		Success:     err == nil,
		RequestBody: describeRequest(req),
	}
	if resp != nil {
		e.Model = resp.Model
		e.InputTokens = resp.Usage.InputTokens
		e.OutputTokens = resp.Usage.OutputTokens
		e.ResponseBody = string(resp.Content)
	}
	if err == nil {
		return e
	}

	e.ErrorMessage = err.Error()
	// Keep whatever the model did produce so bad replies can be inspected.
	var inv *ErrInvalidResponse
	var maxTok *ErrMaxTokensExceeded
	switch {
	case errors.As(err, &inv):
		e.ResponseBody = string(inv.Content)
	case errors.As(err, &maxTok):
		e.ResponseBody = string(maxTok.Content)
	}
	return e
}

// describeRequest renders req as labelled sections for `quizify llm view`.
func describeRequest(req Request) string {
	var b strings.Builder
	section := func(label, body string) {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", label, body)
	}

	if req.System != "" {
		section("system", req.System)
	}
	for _, m := range req.Messages {
		section(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			section("schema: "+req.Schema.Name, string(def))
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
