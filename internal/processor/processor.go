// Package processor runs the analysis engine for accounts: it fetches each
// document, analyzes it, stamps a RunRecord and hands it to the history.
package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"pbx-insights-go/internal/actionable"
	"pbx-insights-go/internal/logger"
	"pbx-insights-go/internal/pipeline"
	"pbx-insights-go/internal/telemetry"
	"pbx-insights-go/internal/types"
)

// Job is one account's document to analyze.
type Job struct {
	AccountID   string
	AccountName string
	Source      Source
}

// Recorder persists run records. *history.Store satisfies it.
type Recorder interface {
	Save(rec types.RunRecord) error
}

type Options struct {
	TTL      time.Duration
	RetryMax time.Duration
	Workers  int
}

// BatchSummary is the outcome of ProcessBatch. Records keep job order.
type BatchSummary struct {
	Total      int               `json:"total"`
	Successful int               `json:"successful"`
	Failed     int               `json:"failed"`
	Records    []types.RunRecord `json:"records"`
}

type Processor struct {
	log      *logger.Logger
	engine   *pipeline.Engine
	recorder Recorder
	opts     Options
	// newBackOff is swapped in tests to avoid real waits.
	newBackOff func() backoff.BackOff
}

// New builds a processor. recorder may be nil when runs are not persisted.
func New(log *logger.Logger, engine *pipeline.Engine, recorder Recorder, opts Options) *Processor {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	p := &Processor{
		log:      log.Component("processor"),
		engine:   engine,
		recorder: recorder,
		opts:     opts,
	}
	p.newBackOff = func() backoff.BackOff {
		b := backoff.NewExponentialBackOff()
		b.MaxElapsedTime = p.opts.RetryMax
		return b
	}
	return p
}

// Process analyzes one job. The record is always filled in; the returned
// error is the cause when rec.Success is false.
func (p *Processor) Process(ctx context.Context, job Job) (types.RunRecord, error) {
	start := time.Now()
	rec := types.RunRecord{
		ID:          uuid.New().String(),
		AccountID:   job.AccountID,
		AccountName: job.AccountName,
		GeneratedAt: start.Unix(),
		ExpiresAt:   start.Add(p.opts.TTL).Unix(),
	}
	log := p.log.WithFields(logrus.Fields{
		"run_id":     rec.ID,
		"account_id": job.AccountID,
		"source":     job.Source.String(),
	})

	report, err := p.run(ctx, job.Source)
	duration := time.Since(start)
	rec.DurationMs = duration.Milliseconds()
	telemetry.ProcessingSeconds.Observe(duration.Seconds())

	if err != nil {
		rec.Error = err.Error()
		telemetry.ReportsProcessed.WithLabelValues(string(types.ReportUnknown), telemetry.StatusError).Inc()
		log.WithError(err).Warn("run failed")
	} else {
		rec.Success = true
		rec.ReportType = report.ReportType
		rec.Preview = actionable.Preview(report)
		rec.Report = report
		telemetry.ReportsProcessed.WithLabelValues(string(report.ReportType), telemetry.StatusSuccess).Inc()
		if report.Classification.Defaulted {
			telemetry.ClassificationFallback.Inc()
		}
		log.WithField("report_type", report.ReportType).WithField("duration_ms", rec.DurationMs).Info("run finished")
	}

	if p.recorder != nil {
		if serr := p.recorder.Save(rec); serr != nil {
			log.WithError(serr).Error("failed to save run record")
		}
	}
	return rec, err
}

func (p *Processor) run(ctx context.Context, src Source) (*types.CanonicalReport, error) {
	raw, err := p.fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	return p.engine.Analyze(raw)
}

func (p *Processor) fetch(ctx context.Context, src Source) ([]byte, error) {
	var data []byte
	op := func() error {
		b, err := src.Fetch(ctx)
		if err != nil {
			p.log.WithError(err).WithField("source", src.String()).Warn("source fetch failed")
			return err
		}
		data = b
		return nil
	}

	if err := backoff.Retry(op, backoff.WithContext(p.newBackOff(), ctx)); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}
	return data, nil
}

// ProcessBatch runs every job on a bounded pool. A failing job never stops
// the others.
func (p *Processor) ProcessBatch(ctx context.Context, jobs []Job) BatchSummary {
	records := make([]types.RunRecord, len(jobs))

	var g errgroup.Group
	g.SetLimit(p.opts.Workers)
	for i, job := range jobs {
		g.Go(func() error {
			records[i], _ = p.Process(ctx, job)
			return nil
		})
	}
	_ = g.Wait()

	sum := BatchSummary{Total: len(jobs), Records: records}
	for _, r := range records {
		if r.Success {
			sum.Successful++
		} else {
			sum.Failed++
		}
	}
	p.log.WithFields(logrus.Fields{
		"total":      sum.Total,
		"successful": sum.Successful,
		"failed":     sum.Failed,
	}).Info("batch complete")
	return sum
}

// JobsFromManifest maps manifest rows to file-backed jobs.
func JobsFromManifest(entries []types.ManifestEntry) []Job {
	jobs := make([]Job, 0, len(entries))
	for _, e := range entries {
		jobs = append(jobs, Job{
			AccountID:   e.AccountID,
			AccountName: e.AccountName,
			Source:      FileSource{Path: e.XMLPath},
		})
	}
	return jobs
}
