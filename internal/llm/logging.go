package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/kidboard/internal/store"
)

// EventSink persists LLM request events. store.EventRepo satisfies it.
type EventSink interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// LoggingProvider records every request it forwards.
type LoggingProvider struct {
	inner  Provider
	sink   EventSink
	logger *zap.Logger
	now    func() time.Time
}

// WithLogging wraps p so each call is written to sink. A failed write is
// logged and does not fail the call.
func WithLogging(p Provider, sink EventSink, logger *zap.Logger) *LoggingProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingProvider{inner: p, sink: sink, logger: logger, now: time.Now}
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }
func (l *LoggingProvider) Name() string    { return providerName(l.inner) }

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := l.now()
	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    providerName(l.inner),
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   l.now().Sub(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: describeRequest(req),
	}
	if subj, ok := SubjectFrom(ctx); ok {
		data.SessionID = subj.SessionID
		data.Question = subj.Question
		data.Answer = subj.Answer
		data.Submitted = subj.Submitted
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		l.logger.Debug("llm request failed", zap.String("purpose", data.Purpose), zap.Error(err))
	}

	if l.sink != nil {
		if logErr := l.sink.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
			l.logger.Warn("record llm request", zap.Error(logErr))
		}
	}
	return resp, err
}

func providerName(p Provider) string {
	if n, ok := p.(Named); ok {
		return n.Name()
	}
	return "unknown"
}

// describeRequest renders req for the llm view command.
func describeRequest(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
