// internal/extract/extractor.go
package extract

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"telegram-jobboard/internal/common/httpx"
	"telegram-jobboard/internal/common/logger"
)

const (
	// Minimum text length below which an extraction is considered failed.
	minExtractedTextLength = 20
	// Number of bytes sampled when deciding whether content is binary.
	binarySampleSize = 1000
	// Proportion of non-printable characters that marks content as binary.
	binaryThreshold = 0.3

	cacheKeyPrefix = "resume:text:"
)

// Extractor turns a resume storage locator into plain text. The boolean is
// false when no usable text could be produced; extraction never errors into
// the caller.
type Extractor interface {
	Extract(ctx context.Context, locator string) (string, bool)
}

type Config struct {
	FetchTimeout  time.Duration
	CacheTTL      time.Duration
	MaxFetchBytes int64
}

// HTTPExtractor downloads resumes from their signed storage URLs and returns
// the body when it is plain text. Binary formats (PDF, DOCX scans) are
// reported as not extractable rather than decoded. Extracted text is cached
// in Redis keyed by a hash of the locator.
type HTTPExtractor struct {
	config     *Config
	httpClient *httpx.Client
	redis      *redis.Client
	logger     logger.Logger
}

// NewHTTPExtractor builds an extractor. redis may be nil, which disables
// caching.
func NewHTTPExtractor(config *Config, rdb *redis.Client, log logger.Logger) *HTTPExtractor {
	return &HTTPExtractor{
		config:     config,
		httpClient: httpx.NewClient(config.FetchTimeout),
		redis:      rdb,
		logger:     log.WithFields(map[string]interface{}{"component": "resume-extractor"}),
	}
}

func (e *HTTPExtractor) Extract(ctx context.Context, locator string) (string, bool) {
	if locator == "" {
		return "", false
	}

	cacheKey := cacheKeyPrefix + hashLocator(locator)
	if e.redis != nil {
		if cached, err := e.redis.Get(ctx, cacheKey).Result(); err == nil {
			return cached, true
		}
	}

	text, ok := e.fetch(ctx, locator)
	if !ok {
		return "", false
	}

	if e.redis != nil {
		if err := e.redis.Set(ctx, cacheKey, text, e.config.CacheTTL).Err(); err != nil {
			e.logger.Warn("failed to cache extracted resume text", map[string]interface{}{
				"error": err,
			})
		}
	}

	return text, true
}

func (e *HTTPExtractor) fetch(ctx context.Context, locator string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		e.logger.Warn("invalid resume locator", map[string]interface{}{
			"error": err,
		})
		return "", false
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		e.logger.Warn("resume fetch failed", map[string]interface{}{
			"error": err,
		})
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		e.logger.Warn("resume fetch returned non-OK status", map[string]interface{}{
			"status": resp.StatusCode,
		})
		return "", false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, e.config.MaxFetchBytes))
	if err != nil {
		e.logger.Warn("resume read failed", map[string]interface{}{
			"error": err,
		})
		return "", false
	}

	text := string(body)
	if isBinaryData(text) {
		return "", false
	}

	text = strings.TrimSpace(text)
	if len(text) < minExtractedTextLength {
		return "", false
	}

	return text, true
}

// isBinaryData checks for PDF/ZIP magic numbers and non-printable density.
func isBinaryData(content string) bool {
	if len(content) == 0 {
		return false
	}

	if strings.HasPrefix(content, "%PDF-") {
		return true
	}

	// ZIP magic number (DOCX containers)
	if len(content) >= 2 && content[:2] == "PK" {
		return true
	}

	sampleSize := binarySampleSize
	if len(content) < sampleSize {
		sampleSize = len(content)
	}
	nonPrintable := 0
	for i := 0; i < sampleSize; i++ {
		ch := content[i]
		if ch < 32 && ch != '\n' && ch != '\r' && ch != '\t' {
			nonPrintable++
		}
	}

	return float64(nonPrintable)/float64(sampleSize) > binaryThreshold
}

func hashLocator(locator string) string {
	sum := sha256.Sum256([]byte(locator))
	return hex.EncodeToString(sum[:])
}
