// internal/extract/extractor_test.go
package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"telegram-jobboard/internal/common/logger"
)

func testExtractorConfig() *Config {
	return &Config{
		FetchTimeout:  5 * time.Second,
		CacheTTL:      time.Hour,
		MaxFetchBytes: 1 << 20,
	}
}

const sampleResume = "Dana Ng. Backend engineer with five years of Go, PostgreSQL and Redis experience."

func TestHTTPExtractor_Extract_PlainText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleResume))
	}))
	defer server.Close()

	e := NewHTTPExtractor(testExtractorConfig(), nil, logger.NewNoOpLogger())
	text, ok := e.Extract(context.Background(), server.URL)

	assert.True(t, ok)
	assert.Equal(t, sampleResume, text)
}

func TestHTTPExtractor_Extract_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "PDF content",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("%PDF-1.7 binary payload follows"))
			},
		},
		{
			name: "DOCX container",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("PK\x03\x04 zip payload"))
			},
		},
		{
			name: "too short",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("short"))
			},
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			e := NewHTTPExtractor(testExtractorConfig(), nil, logger.NewNoOpLogger())
			text, ok := e.Extract(context.Background(), server.URL)

			assert.False(t, ok)
			assert.Empty(t, text)
		})
	}
}

func TestHTTPExtractor_Extract_EmptyLocator(t *testing.T) {
	e := NewHTTPExtractor(testExtractorConfig(), nil, logger.NewNoOpLogger())
	text, ok := e.Extract(context.Background(), "")

	assert.False(t, ok)
	assert.Empty(t, text)
}

func TestHTTPExtractor_Extract_CacheHitSkipsFetch(t *testing.T) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	fetches := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		w.Write([]byte(sampleResume))
	}))
	defer server.Close()

	e := NewHTTPExtractor(testExtractorConfig(), rdb, logger.NewNoOpLogger())

	text, ok := e.Extract(context.Background(), server.URL)
	assert.True(t, ok)
	assert.Equal(t, sampleResume, text)

	text, ok = e.Extract(context.Background(), server.URL)
	assert.True(t, ok)
	assert.Equal(t, sampleResume, text)

	assert.Equal(t, 1, fetches)
}

func TestHTTPExtractor_Extract_FailedFetchNotCached(t *testing.T) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF-1.7 binary"))
	}))
	defer server.Close()

	e := NewHTTPExtractor(testExtractorConfig(), rdb, logger.NewNoOpLogger())
	_, ok := e.Extract(context.Background(), server.URL)

	assert.False(t, ok)
	assert.Empty(t, mr.Keys())
}

func TestHTTPExtractor_Extract_MaxBytesEnforced(t *testing.T) {
	big := strings.Repeat("resume text ", 10000)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(big))
	}))
	defer server.Close()

	cfg := testExtractorConfig()
	cfg.MaxFetchBytes = 100

	e := NewHTTPExtractor(cfg, nil, logger.NewNoOpLogger())
	text, ok := e.Extract(context.Background(), server.URL)

	assert.True(t, ok)
	assert.LessOrEqual(t, len(text), 100)
}

func TestIsBinaryData(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected bool
	}{
		{name: "empty", content: "", expected: false},
		{name: "plain text", content: sampleResume, expected: false},
		{name: "pdf magic", content: "%PDF-1.4", expected: true},
		{name: "zip magic", content: "PK\x03\x04", expected: true},
		{name: "mostly control bytes", content: strings.Repeat("\x00\x01", 100), expected: true},
		{name: "text with newlines and tabs", content: "line one\n\tline two\r\n", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isBinaryData(tt.content))
		})
	}
}
