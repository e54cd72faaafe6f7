// internal/rank/analyzer.go
package rank

import (
	"context"
	"time"

	"telegram-jobboard/internal/common/logger"
	"telegram-jobboard/internal/common/metrics"
	"telegram-jobboard/internal/extract"
	"telegram-jobboard/internal/models"
)

// Analyzer ranks a job's applicants. It consults the oracle when one is
// configured and degrades to rule-based scoring when the oracle is missing
// or fails. A single ranking request never mixes the two modes.
type Analyzer struct {
	config    *Config
	oracle    Oracle
	extractor extract.Extractor
	logger    logger.Logger
}

// NewAnalyzer builds an analyzer. oracle may be nil, in which case every
// request uses rule-based scoring. extractor may be nil, which skips resume
// text in prompts.
func NewAnalyzer(config *Config, oracle Oracle, extractor extract.Extractor, log logger.Logger) *Analyzer {
	return &Analyzer{
		config:    config,
		oracle:    oracle,
		extractor: extractor,
		logger:    log.WithFields(map[string]interface{}{"component": "applicant-ranker"}),
	}
}

// Rank scores and orders the given applications for job. It always returns
// a ranked slice covering the whole batch; oracle failures are absorbed by
// the fallback scorer.
func (a *Analyzer) Rank(ctx context.Context, job *models.Job, apps []models.Application) []models.RankedResult {
	if len(apps) == 0 {
		return []models.RankedResult{}
	}

	start := time.Now()

	if a.oracle == nil {
		a.logger.Info("AI scorer not configured, using rule-based ranking", map[string]interface{}{
			"job_id":     job.ID,
			"applicants": len(apps),
		})
		return a.completeFallback(job, apps, start, "oracle_unavailable")
	}

	results, err := a.rankWithOracle(ctx, job, apps)
	if err != nil {
		a.logger.Warn("AI scoring failed, falling back to rule-based ranking", map[string]interface{}{
			"job_id":     job.ID,
			"applicants": len(apps),
			"error":      err,
		})
		metrics.OracleFailures.WithLabelValues("generate_or_parse").Inc()
		return a.completeFallback(job, apps, start, "")
	}

	metrics.RankingsCompleted.WithLabelValues(metrics.ModeOracle).Inc()
	metrics.RankingDuration.WithLabelValues(metrics.ModeOracle).Observe(time.Since(start).Seconds())

	a.logger.Info("applicant ranking completed", map[string]interface{}{
		"job_id":     job.ID,
		"applicants": len(apps),
		"ranked":     len(results),
		"mode":       metrics.ModeOracle,
	})

	return results
}

func (a *Analyzer) completeFallback(job *models.Job, apps []models.Application, start time.Time, reason string) []models.RankedResult {
	if reason != "" {
		metrics.OracleFailures.WithLabelValues(reason).Inc()
	}
	results := fallbackRank(apps)
	metrics.RankingsCompleted.WithLabelValues(metrics.ModeFallback).Inc()
	metrics.RankingDuration.WithLabelValues(metrics.ModeFallback).Observe(time.Since(start).Seconds())

	a.logger.Info("applicant ranking completed", map[string]interface{}{
		"job_id":     job.ID,
		"applicants": len(apps),
		"ranked":     len(results),
		"mode":       metrics.ModeFallback,
	})

	return results
}

func (a *Analyzer) rankWithOracle(ctx context.Context, job *models.Job, apps []models.Application) ([]models.RankedResult, error) {
	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	candidates := make([]candidate, 0, len(apps))
	for i := range apps {
		c := newCandidate(&apps[i])
		if c.HasResume && a.extractor != nil {
			if text, ok := a.extractor.Extract(ctx, apps[i].ResumeURL); ok {
				c.ResumeText = truncateResumeText(text, a.config.ResumeTextMaxChars)
			}
		}
		candidates = append(candidates, c)
	}

	prompt := buildPrompt(job, candidates)

	responseText, err := a.oracle.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return parseOracleResponse(responseText, apps)
}
