package logger_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/relabs-tech/hubsim/core/logger"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, logger.ParseLevel("debug"))
	assert.Equal(t, logrus.WarnLevel, logger.ParseLevel(" warn "))
	assert.Equal(t, logrus.InfoLevel, logger.ParseLevel(""))
	assert.Equal(t, logrus.InfoLevel, logger.ParseLevel("loud"))
}

func TestContextWithLoggerIsStable(t *testing.T) {
	ctx, rlog := logger.ContextWithLogger(context.Background())
	require.NotNil(t, rlog)

	again, rlog2 := logger.ContextWithLogger(ctx)
	assert.Equal(t, ctx, again)
	assert.Same(t, rlog, rlog2)
	assert.NotEmpty(t, logger.RequestIDFromContext(ctx))
}

func TestContextWithDevice(t *testing.T) {
	ctx, rlog := logger.ContextWithLogger(context.Background())
	ctx, dlog := logger.ContextWithDevice(ctx, "simdev1")

	assert.Equal(t, "simdev1", dlog.Data["device_id"])
	assert.Equal(t, rlog.Data["requestID"], dlog.Data["requestID"])
	assert.Same(t, dlog, logger.FromContext(ctx))

	_, plain := logger.ContextWithDevice(context.Background(), "simdev2")
	assert.Equal(t, "simdev2", plain.Data["device_id"])
}

func TestFromContextWithoutLogger(t *testing.T) {
	assert.NotNil(t, logger.FromContext(context.Background()))
	assert.Empty(t, logger.RequestIDFromContext(context.Background()))
}

func TestAddRequestID(t *testing.T) {
	router := mux.NewRouter()
	logger.AddRequestID(router)

	var requestID string
	router.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		requestID = logger.RequestIDFromContext(r.Context())
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, requestID)
}
