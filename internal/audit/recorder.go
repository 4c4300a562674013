package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"jobboard-platform/internal/identity"

	"github.com/gin-gonic/gin"
)

// Gin context keys handlers may set to enrich the entry for their request.
const (
	ctxKeyChanges      = "audit_changes"
	ctxKeyResourceName = "audit_resource_name"
	ctxKeyDetails      = "audit_details"
)

// maxBodySnapshot bounds how much of the request body the recorder buffers
// for name/change extraction.
const maxBodySnapshot = 64 << 10

// Recorder emits at most one audit entry per successful request.
//
// Contract:
// - fires only when the handler chain responded with status < 400 and a
//   principal is attached to the request
// - the write runs on a background goroutine after the handler returns, so
//   it never delays or alters the response
// - write failures are logged and dropped, never retried
type Recorder struct {
	svc     *Service
	log     *slog.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewRecorder(svc *Service, log *slog.Logger) *Recorder {
	if log == nil {
		log = slog.Default()
	}
	return &Recorder{svc: svc, log: log, timeout: 5 * time.Second}
}

// Record returns middleware for a route declared as {action, resource}.
// The verb comes from route registration, not from the HTTP method.
func (r *Recorder) Record(action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Snapshot the body up front; the handler will consume the original
		// reader. Only mutating verbs carry a body worth inspecting.
		var body map[string]any
		if action == ActionCreate || action == ActionUpdate {
			body = snapshotBody(c)
		}

		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}
		p, ok := identity.PrincipalFrom(c.Request.Context())
		if !ok {
			return
		}

		e := Entry{
			ActorID:    p.ID,
			ActorEmail: p.Email,
			ActorName:  p.Name,
			Action:     action,
			Resource:   resource,
			ResourceID: c.Param("id"),
			IPAddress:  c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
		}

		e.ResourceName = displayName(c, body)
		if v, ok := c.Get(ctxKeyDetails); ok {
			if s, ok := v.(string); ok {
				e.Details = s
			}
		}
		if action == ActionUpdate {
			e.Changes = changesFor(c, body)
		}

		r.enqueue(e)
	}
}

// SetChanges lets a handler supply a real change list (with true old values)
// for its update, replacing the body-derived one.
func SetChanges(c *gin.Context, changes []FieldChange) {
	c.Set(ctxKeyChanges, changes)
}

// SetResourceName overrides the body-derived display name.
func SetResourceName(c *gin.Context, name string) {
	c.Set(ctxKeyResourceName, name)
}

// SetDetails attaches a free-text description to the entry.
func SetDetails(c *gin.Context, details string) {
	c.Set(ctxKeyDetails, details)
}

// Drain blocks until in-flight writes finish or ctx expires. Intended for
// graceful shutdown; entries still pending when the process exits are lost,
// which the best-effort contract allows.
func (r *Recorder) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Recorder) enqueue(e Entry) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		// Detached from the request context: the response is already on its
		// way and cancellation must not reach this write.
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		if err := r.svc.Append(ctx, e); err != nil {
			r.log.Error("audit write failed", "action", e.Action, "resource", e.Resource, "err", err)
		}
	}()
}

func snapshotBody(c *gin.Context) map[string]any {
	if c.Request.Body == nil {
		return nil
	}
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodySnapshot))
	if err != nil {
		return nil
	}
	// The cap applies to the parsed snapshot only; the handler must still see
	// the complete stream, so the unread remainder is stitched back on.
	c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(raw), c.Request.Body))

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

// displayName prefers a handler-set name, then name/title/email from the body.
func displayName(c *gin.Context, body map[string]any) string {
	if v, ok := c.Get(ctxKeyResourceName); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	for _, key := range []string{"name", "title", "email"} {
		if s, ok := body[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func changesFor(c *gin.Context, body map[string]any) []FieldChange {
	if v, ok := c.Get(ctxKeyChanges); ok {
		if changes, ok := v.([]FieldChange); ok {
			return changes
		}
	}

	fields := make([]string, 0, len(body))
	for k := range body {
		if k == "password" {
			continue
		}
		fields = append(fields, k)
	}
	sort.Strings(fields)

	changes := make([]FieldChange, 0, len(fields))
	for _, f := range fields {
		changes = append(changes, FieldChange{
			Field:    f,
			OldValue: OldValueUnknown,
			NewValue: renderValue(body[f]),
		})
	}
	return changes
}

func renderValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	case float64:
		// JSON numbers decode as float64; render integers without a fraction.
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case bool:
		return fmt.Sprintf("%t", t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}
