package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"console format", &Config{Level: "debug", Format: "console", Output: "stdout"}},
		{"json format", &Config{Level: "info", Format: "json", Output: "stderr"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			require.NoError(t, err)
			require.NotNil(t, l)
		})
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("info"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("ERROR"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("unknown"))
}

func TestNewForEnvironment(t *testing.T) {
	prod, err := NewForEnvironment("production")
	require.NoError(t, err)
	assert.NotNil(t, prod)

	dev, err := NewForEnvironment("development")
	require.NoError(t, err)
	assert.NotNil(t, dev)
}

func TestContextRoundTrip(t *testing.T) {
	base := zap.NewNop()
	ctx := context.Background()

	ctx, l := WithRequestID(ctx, base, "req-123")
	require.NotNil(t, l)
	assert.Equal(t, "req-123", GetRequestID(ctx))

	ctx, _ = WithOrgID(ctx, l, "org-456")
	assert.Equal(t, "org-456", GetOrgID(ctx))

	ctx, _ = WithUserID(ctx, l, "user-789")
	assert.Equal(t, "user-789", GetUserID(ctx))

	assert.NotNil(t, FromContext(ctx))
}

func TestFromContext_Missing(t *testing.T) {
	l := FromContext(context.Background())
	require.NotNil(t, l)
	assert.Equal(t, "", GetRequestID(context.Background()))
	assert.Equal(t, "", GetOrgID(context.Background()))
}

func TestContextLogger_NilSafe(t *testing.T) {
	cl := L(context.Background())
	require.NotNil(t, cl)
	// must not panic
	cl.Info("hello")
	cl.With(zap.String("k", "v")).Debug("child")
	assert.NotNil(t, cl.Zap())
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("bogus"))
}

func TestGormLogger_LogMode(t *testing.T) {
	gl := NewGormLogger(zap.NewNop(), gormlogger.Warn)
	changed := gl.LogMode(gormlogger.Info)
	require.NotNil(t, changed)
	// original is not mutated
	assert.Equal(t, gormlogger.Warn, gl.logLevel)
}
