package core

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// correlationIDKey is the context key the envelope and orchestrator use to
// stash the active request's correlation id, so *WithContext log calls can
// recover it without threading it through every function signature.
type correlationIDKey struct{}

// WithCorrelationID attaches a correlation id to ctx for structured log
// correlation (spec §7: "Logs carry the correlation_id so a failure can be
// traced through the workflow").
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// CorrelationIDFromContext extracts a correlation id previously attached
// with WithCorrelationID, or "" if none is present.
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return v
	}
	return ""
}

// ProductionLogger is a structured, privacy-preserving logger: JSON or
// plain-text events tagged with a component name and, when present, the
// request's correlation id. Grounded on the teacher's ProductionLogger in
// core/config.go, which is itself built on stdlib io/encoding-json rather
// than a third-party logging library (see DESIGN.md).
type ProductionLogger struct {
	component string
	debug     bool
	json      bool
	out       io.Writer
}

// NewProductionLogger builds a ProductionLogger. format is "json" or
// "text"; debug enables Debug-level output.
func NewProductionLogger(component, format string, debug bool) *ProductionLogger {
	return &ProductionLogger{
		component: component,
		debug:     debug,
		json:      strings.EqualFold(format, "json"),
		out:       os.Stdout,
	}
}

// WithComponent returns a logger tagged with a different component name,
// sharing the same output configuration. Implements ComponentAwareLogger.
func (p *ProductionLogger) WithComponent(component string) Logger {
	cp := *p
	cp.component = component
	return &cp
}

func (p *ProductionLogger) Info(msg string, fields map[string]interface{}) {
	p.log(context.Background(), "INFO", msg, fields)
}
func (p *ProductionLogger) Error(msg string, fields map[string]interface{}) {
	p.log(context.Background(), "ERROR", msg, fields)
}
func (p *ProductionLogger) Warn(msg string, fields map[string]interface{}) {
	p.log(context.Background(), "WARN", msg, fields)
}
func (p *ProductionLogger) Debug(msg string, fields map[string]interface{}) {
	if p.debug {
		p.log(context.Background(), "DEBUG", msg, fields)
	}
}

func (p *ProductionLogger) InfoWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	p.log(ctx, "INFO", msg, fields)
}
func (p *ProductionLogger) ErrorWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	p.log(ctx, "ERROR", msg, fields)
}
func (p *ProductionLogger) WarnWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	p.log(ctx, "WARN", msg, fields)
}
func (p *ProductionLogger) DebugWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	if p.debug {
		p.log(ctx, "DEBUG", msg, fields)
	}
}

func (p *ProductionLogger) log(ctx context.Context, level, msg string, fields map[string]interface{}) {
	correlationID := CorrelationIDFromContext(ctx)

	if p.json {
		entry := map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339Nano),
			"level":     level,
			"component": p.component,
			"message":   msg,
		}
		if correlationID != "" {
			entry["correlation_id"] = correlationID
		}
		for k, v := range fields {
			entry[k] = v
		}
		if data, err := json.Marshal(entry); err == nil {
			fmt.Fprintln(p.out, string(data))
		}
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] [%s]", time.Now().Format(time.RFC3339), level, p.component)
	if correlationID != "" {
		fmt.Fprintf(&b, " [corr=%s]", correlationID)
	}
	fmt.Fprintf(&b, " %s", msg)
	for k, v := range fields {
		fmt.Fprintf(&b, " %s=%v", k, v)
	}
	fmt.Fprintln(p.out, b.String())
}
