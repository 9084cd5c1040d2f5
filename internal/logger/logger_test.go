package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestRequestIDRoundTrip(t *testing.T) {
	id := NewRequestID()
	if len(id) != 8 {
		t.Fatalf("expected 8-char id, got %q", id)
	}
	ctx := WithRequestID(context.Background(), id)
	if got := RequestIDFromContext(ctx); got != id {
		t.Errorf("expected %q, got %q", id, got)
	}
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty id, got %q", got)
	}
}

func TestRedact(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`{"username":"admin","password":"admin123"}`, `{"username":"admin","password":"***"}`},
		{`{"token": "abc.def"}`, `{"token": "***"}`},
		{`{"play_text":"Eagles +5 yard rush"}`, `{"play_text":"Eagles +5 yard rush"}`},
		{`{"password":"with \"quote\""}`, `{"password":"***"}`},
	}
	for _, tt := range tests {
		if got := Redact([]byte(tt.in)); got != tt.want {
			t.Errorf("Redact(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestLogBodyTruncatesAndRedacts(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf).Level(zerolog.DebugLevel)

	LogBody(l, "request_body", []byte(`{"password":"secret"}`))
	if strings.Contains(buf.String(), "secret") {
		t.Fatalf("password leaked: %s", buf.String())
	}

	buf.Reset()
	LogBody(l, "response", bytes.Repeat([]byte("a"), maxBodyLog+50))
	if !strings.Contains(buf.String(), `"truncated":true`) {
		t.Errorf("expected truncated flag: %s", buf.String())
	}

	buf.Reset()
	LogBody(l, "response", nil)
	if buf.Len() != 0 {
		t.Errorf("expected nothing logged for empty body, got %s", buf.String())
	}
}
