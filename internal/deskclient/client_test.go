package deskclient

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/muurk/orderdesk/internal/catalog"
	"github.com/muurk/orderdesk/internal/server"
	"github.com/muurk/orderdesk/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	c := NewClient(url)
	c.SetRetry(2, time.Millisecond)
	c.MaxRetryDelay = 5 * time.Millisecond
	return c
}

func newDesk(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv, err := server.New(&server.Config{Listen: "127.0.0.1:0", Instance: "test-desk"})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthAgainstDesk(t *testing.T) {
	ts := newDesk(t)

	health, err := newTestClient(ts.URL).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, version.Version, health.Version)
	assert.Equal(t, 0, health.Sessions)
	assert.NotEmpty(t, health.Message)
}

func TestCatalogAgainstDesk(t *testing.T) {
	ts := newDesk(t)

	cat, err := newTestClient(ts.URL + "/").Catalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, catalog.Default().Entries(), cat.Entries())
}

func TestCatalogIsCached(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[{"brand":"Nokia","models":["3310"]}]}`))
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	for i := 0; i < 3; i++ {
		cat, err := c.Catalog(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"3310"}, cat.ModelsFor("Nokia"))
	}
	assert.Equal(t, int32(1), hits.Load())

	c.InvalidateCache()
	assert.Nil(t, c.GetCachedCatalog())
	_, err := c.Catalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestCatalogCacheDisabled(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"success":true,"data":[{"brand":"Nokia","models":["3310"]}]}`))
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	c.CacheDuration = 0
	_, _ = c.Catalog(context.Background())
	_, _ = c.Catalog(context.Background())
	assert.Equal(t, int32(2), hits.Load())
}

func TestInvalidCatalogIsParseError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer ts.Close()

	_, err := newTestClient(ts.URL).Catalog(context.Background())
	require.Error(t, err)

	var de *DeskError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, ErrTypeParse, de.Type)
	assert.ErrorIs(t, err, catalog.ErrEmpty)
}

func TestRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"message":"ok","version":"1.2.3","sessions":2}`))
	}))
	defer ts.Close()

	health, err := newTestClient(ts.URL).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", health.Version)
	assert.Equal(t, 2, health.Sessions)
	assert.Equal(t, int32(3), hits.Load())
}

func TestGivesUpAfterMaxRetries(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := newTestClient(ts.URL).Health(context.Background())
	require.Error(t, err)
	assert.True(t, IsRetryable(err))

	var de *DeskError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, ErrTypeHTTP, de.Type)
	assert.Equal(t, http.StatusBadGateway, de.StatusCode)
	assert.Equal(t, int32(3), hits.Load())
}

func TestAPIErrorIsNotRetried(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"NOT_FOUND","message":"no such route"}}`))
	}))
	defer ts.Close()

	_, err := newTestClient(ts.URL).Health(context.Background())
	require.Error(t, err)
	assert.True(t, IsAPIError(err))
	assert.False(t, IsRetryable(err))
	assert.Equal(t, int32(1), hits.Load())

	var de *DeskError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "NOT_FOUND", de.Code)
}

func TestMalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not a desk</html>`))
	}))
	defer ts.Close()

	_, err := newTestClient(ts.URL).Health(context.Background())
	var de *DeskError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, ErrTypeParse, de.Type)
}

func TestConnectionRefused(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := newTestClient(url).Health(context.Background())
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
}

func TestCancelledContextStopsRetrying(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "busy", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	c.SetRetry(5, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	start := time.Now()
	_, err := c.Health(ctx)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestClassifyNetworkError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantType  ErrorType
		retryable bool
	}{
		{
			name:      "dns",
			err:       &net.DNSError{Name: "desk.invalid", Err: "no such host"},
			wantType:  ErrTypeDNS,
			retryable: false,
		},
		{
			name:      "refused",
			err:       &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED},
			wantType:  ErrTypeConnectionRefused,
			retryable: true,
		},
		{
			name:      "timeout",
			err:       context.DeadlineExceeded,
			wantType:  ErrTypeTimeout,
			retryable: true,
		},
		{
			name:      "other",
			err:       errors.New("boom"),
			wantType:  ErrTypeNetwork,
			retryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyNetworkError(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.retryable, got.Retryable)
			assert.ErrorIs(t, got, tt.err)
		})
	}

	assert.Nil(t, ClassifyNetworkError(nil))
}

func TestNewHTTPErrorRetryable(t *testing.T) {
	assert.False(t, NewHTTPError(http.StatusBadRequest, "bad").Retryable)
	assert.True(t, NewHTTPError(http.StatusInternalServerError, "oops").Retryable)
}

func TestErrorTypeString(t *testing.T) {
	assert.Equal(t, "Connection Refused", ErrTypeConnectionRefused.String())
	assert.Equal(t, "ErrorType(42)", ErrorType(42).String())
	assert.Contains(t, NewParseError("bad json", errors.New("eof")).Error(), "caused by: eof")
}
