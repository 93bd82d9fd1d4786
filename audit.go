package goCred

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/MrEthical07/goCred/fault"
)

const (
	auditEventTokenSigned      = "token_signed"
	auditEventTokenVerified    = "token_verified"
	auditEventTokenRejected    = "token_rejected"
	auditEventPasswordCompare  = "password_compare"
	auditEventDeviceClassified = "device_classified"
)

// AuditEvent describes one toolkit operation. It never carries secrets, passwords, hashes,
// or token strings.
type AuditEvent struct {
	Timestamp time.Time         `json:"timestamp"`
	EventType string            `json:"event_type"`
	Subject   string            `json:"subject,omitempty"`
	DeviceID  string            `json:"device_id,omitempty"`
	Success   bool              `json:"success"`
	Error     string            `json:"error,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// AuditSink receives audit events from the dispatcher goroutine.
type AuditSink interface {
	Emit(ctx context.Context, event AuditEvent)
}

// auditErrorCode renders an error as a stable snake_case kind, e.g. "token_expired".
func auditErrorCode(err error) string {
	if err == nil {
		return ""
	}
	return strings.ReplaceAll(fault.KindOf(err).String(), " ", "_")
}

type NoOpSink struct{}

func (NoOpSink) Emit(context.Context, AuditEvent) {}

type ChannelSink struct {
	events chan AuditEvent
}

func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		events: make(chan AuditEvent, buffer),
	}
}

func (s *ChannelSink) Emit(ctx context.Context, event AuditEvent) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

func (s *ChannelSink) Events() <-chan AuditEvent {
	return s.events
}

type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{
		writer: w,
	}
}

func (s *JSONWriterSink) Emit(ctx context.Context, event AuditEvent) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
	_, _ = s.writer.Write([]byte("\n"))
}

// HclogSink writes each event as one Info line on a named sub-logger.
type HclogSink struct {
	logger hclog.Logger
}

func NewHclogSink(logger hclog.Logger) *HclogSink {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &HclogSink{logger: logger.Named("audit")}
}

func (s *HclogSink) Emit(_ context.Context, event AuditEvent) {
	if s == nil {
		return
	}
	args := []any{"success", event.Success}
	if event.Subject != "" {
		args = append(args, "subject", event.Subject)
	}
	if event.DeviceID != "" {
		args = append(args, "device_id", event.DeviceID)
	}
	if event.Error != "" {
		args = append(args, "error", event.Error)
	}
	for k, v := range event.Metadata {
		args = append(args, k, v)
	}
	s.logger.Info(event.EventType, args...)
}
