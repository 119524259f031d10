package transfer

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	traceSpan "go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/skylarkhq/vikingdb-go/v1/observability"
	"github.com/skylarkhq/vikingdb-go/v1/vikingdb"
)

// Logger is the subset of std logger methods this package uses.
type Logger interface {
	Debug(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Upserter writes record batches into a collection. *vikingdb.Client
// satisfies it.
type Upserter interface {
	Upsert(ctx context.Context, collectionName string, records []vikingdb.Record) error
}

// Report summarizes one transfer run.
type Report struct {
	// RunID uniquely identifies the run.
	RunID string

	// Objects is the number of objects converted to records.
	Objects int

	// FailedObjects is the number of objects in batches whose upsert
	// failed.
	FailedObjects int

	// Batches is the number of upsert calls made.
	Batches int

	// FailedBatches is the number of upsert calls that failed.
	FailedBatches int

	// Duration is the wall time of the run.
	Duration time.Duration
}

// SpanStarter opens tracing spans. *tracer.Tracer satisfies it.
type SpanStarter interface {
	StartSpan(ctx context.Context, name string) (context.Context, traceSpan.Span)
}

// Transferrer moves objects from one bucket prefix into one collection.
type Transferrer struct {
	cfg      *Config
	lister   ObjectLister
	upserter Upserter
	logger   Logger
	observer observability.Observer
	spans    SpanStarter
}

// NewTransferrer validates cfg and builds a pipeline over the given
// lister and upserter.
func NewTransferrer(cfg *Config, lister ObjectLister, upserter Upserter) (*Transferrer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if lister == nil {
		return nil, fmt.Errorf("transfer: lister is required")
	}
	if upserter == nil {
		return nil, fmt.Errorf("transfer: upserter is required")
	}
	return &Transferrer{cfg: cfg, lister: lister, upserter: upserter}, nil
}

// WithLogger attaches a structured logger. Returns the same instance
// for chaining.
func (t *Transferrer) WithLogger(logger Logger) *Transferrer {
	t.logger = logger
	return t
}

// WithObserver attaches an observability hook. Returns the same
// instance for chaining.
func (t *Transferrer) WithObserver(observer observability.Observer) *Transferrer {
	t.observer = observer
	return t
}

// WithTracer wraps each run in a tracing span. Returns the same
// instance for chaining.
func (t *Transferrer) WithTracer(spans SpanStarter) *Transferrer {
	t.spans = spans
	return t
}

// Run lists all keys under the configured prefix and upserts them as
// records, Workers batches at a time. A failed batch is counted and
// logged but does not stop the run; listing errors and context
// cancellation do. The report for the (possibly partial) run is
// returned alongside any error.
func (t *Transferrer) Run(ctx context.Context) (*Report, error) {
	report := &Report{RunID: uuid.NewString()}
	start := time.Now()
	now := start.UTC().Format(time.RFC3339)

	if t.spans != nil {
		var span traceSpan.Span
		ctx, span = t.spans.StartSpan(ctx, "transfer-run")
		defer span.End()
		span.SetAttributes(
			attribute.String("run_id", report.RunID),
			attribute.String("bucket", t.cfg.Bucket),
			attribute.String("prefix", t.cfg.Prefix),
		)
	}

	t.logInfo("transfer run started", map[string]interface{}{
		"run_id":     report.RunID,
		"bucket":     t.cfg.Bucket,
		"prefix":     t.cfg.Prefix,
		"collection": t.cfg.CollectionName,
	})

	var mu sync.Mutex
	var firstBatchErr error
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.cfg.Workers)

	keys, listErrs := t.lister.ListKeys(ctx, t.cfg.Bucket, t.cfg.Prefix)

	batch := make([]vikingdb.Record, 0, t.cfg.BatchSize)
	flush := func() {
		records := batch
		batch = make([]vikingdb.Record, 0, t.cfg.BatchSize)
		g.Go(func() error {
			err := t.upsertBatch(gctx, records)
			mu.Lock()
			report.Batches++
			if err != nil {
				report.FailedBatches++
				report.FailedObjects += len(records)
				if firstBatchErr == nil {
					firstBatchErr = err
				}
			} else {
				report.Objects += len(records)
			}
			mu.Unlock()
			if err != nil {
				t.logError("batch upsert failed", err, map[string]interface{}{
					"run_id":  report.RunID,
					"records": len(records),
				})
				// Keep going; only context cancellation stops the run.
				if gctx.Err() != nil {
					return gctx.Err()
				}
			}
			return nil
		})
	}

	for key := range keys {
		batch = append(batch, t.record(key, now))
		if len(batch) >= t.cfg.BatchSize {
			flush()
		}
	}
	if len(batch) > 0 {
		flush()
	}

	err := g.Wait()
	if err == nil {
		if listErr := <-listErrs; listErr != nil {
			err = listErr
		}
	}
	if err == nil {
		err = ctx.Err()
	}
	if err == nil && report.FailedBatches > 0 {
		err = fmt.Errorf("transfer: %d of %d batches failed: %w", report.FailedBatches, report.Batches, firstBatchErr)
	}

	report.Duration = time.Since(start)
	t.observeRun(report, err)
	if err != nil {
		t.logError("transfer run failed", err, map[string]interface{}{
			"run_id":  report.RunID,
			"objects": report.Objects,
		})
		return report, err
	}
	t.logInfo("transfer run finished", map[string]interface{}{
		"run_id":         report.RunID,
		"objects":        report.Objects,
		"failed_objects": report.FailedObjects,
		"batches":        report.Batches,
		"duration":       report.Duration.String(),
	})
	return report, nil
}

// record converts one object key into an upsertable record. The ID is
// the SHA-1 of the key, so re-transferring a key overwrites its record.
func (t *Transferrer) record(key, createdAt string) vikingdb.Record {
	sum := sha1.Sum([]byte(key))
	return vikingdb.Record{
		"id":         hex.EncodeToString(sum[:]),
		"image":      fmt.Sprintf("tos://%s/%s", t.cfg.Bucket, key),
		"created_at": createdAt,
	}
}

func (t *Transferrer) upsertBatch(ctx context.Context, records []vikingdb.Record) error {
	if err := t.upserter.Upsert(ctx, t.cfg.CollectionName, records); err != nil {
		return fmt.Errorf("transfer: upsert batch of %d: %w", len(records), err)
	}
	return nil
}

func (t *Transferrer) observeRun(report *Report, err error) {
	if t.observer == nil {
		return
	}
	t.observer.ObserveOperation(observability.OperationContext{
		Component:   "transfer",
		Operation:   "run",
		Resource:    t.cfg.Bucket,
		SubResource: t.cfg.CollectionName,
		Duration:    report.Duration,
		Error:       err,
		Size:        int64(report.Objects),
		Metadata: map[string]interface{}{
			"run_id":  report.RunID,
			"batches": report.Batches,
		},
	})
}

func (t *Transferrer) logInfo(msg string, fields map[string]interface{}) {
	if t.logger != nil {
		t.logger.Info(msg, nil, fields)
	}
}

func (t *Transferrer) logError(msg string, err error, fields map[string]interface{}) {
	if t.logger != nil {
		t.logger.Error(msg, err, fields)
	}
}
