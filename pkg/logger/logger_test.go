package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenchly/wrenchly/pkg/logger"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	return record
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json output with static attrs", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithFormat(logger.FormatJSON),
			logger.WithAttr(slog.String("service", "wrenchly")),
		)

		log.Info("server started")

		record := decodeLine(t, &buf)
		assert.Equal(t, "server started", record["msg"])
		assert.Equal(t, "wrenchly", record["service"])
	})

	t.Run("default level filters debug", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf))

		log.Debug("noise")
		assert.Zero(t, buf.Len())

		log.Info("signal")
		assert.Positive(t, buf.Len())
	})

	t.Run("invalid format panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			logger.New(logger.WithFormat(logger.Format("xml")))
		})
	})

	t.Run("context extractor injects attributes", func(t *testing.T) {
		t.Parallel()
		type requestIDKey struct{}

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithContextValue("request_id", requestIDKey{}),
		)

		ctx := context.WithValue(context.Background(), requestIDKey{}, "req-42")
		log.InfoContext(ctx, "handled")

		record := decodeLine(t, &buf)
		assert.Equal(t, "req-42", record["request_id"])
	})

	t.Run("extractor stays silent when value is absent", func(t *testing.T) {
		t.Parallel()
		type requestIDKey struct{}

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithContextValue("request_id", requestIDKey{}),
		)

		log.InfoContext(context.Background(), "handled")

		record := decodeLine(t, &buf)
		_, present := record["request_id"]
		assert.False(t, present)
	})
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	t.Run("error attr", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, slog.Attr{}, logger.Error(nil))
		attr := logger.Error(assert.AnError)
		assert.Equal(t, "error", attr.Key)
	})

	t.Run("id attrs", func(t *testing.T) {
		t.Parallel()
		id := uuid.New()
		assert.Equal(t, "tenant_id", logger.TenantID(id).Key)
		assert.Equal(t, id.String(), logger.TenantID(id).Value.String())
		assert.Equal(t, "principal_id", logger.PrincipalID(id).Key)
	})
}
