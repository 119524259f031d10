package transfer

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/skylarkhq/vikingdb-go/v1/vikingdb"
)

type fakeLister struct {
	keys []string
	err  error
}

func (f *fakeLister) ListKeys(ctx context.Context, bucket, prefix string) (<-chan string, <-chan error) {
	keys := make(chan string)
	errs := make(chan error, 1)
	go func() {
		defer close(keys)
		defer close(errs)
		for _, k := range f.keys {
			select {
			case keys <- k:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
		if f.err != nil {
			errs <- f.err
		}
	}()
	return keys, errs
}

type fakeUpserter struct {
	mu      sync.Mutex
	batches [][]vikingdb.Record
	failOn  int // 1-based batch number to fail on; 0 means never
}

func (f *fakeUpserter) Upsert(ctx context.Context, collectionName string, records []vikingdb.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, records)
	if f.failOn > 0 && len(f.batches) == f.failOn {
		return errors.New("upsert rejected")
	}
	return nil
}

func testConfig() *Config {
	return &Config{
		Bucket:         "images",
		Prefix:         "cats/",
		CollectionName: "docs",
		Workers:        2,
		BatchSize:      10,
	}
}

func TestRun_TransfersAllKeys(t *testing.T) {
	keys := make([]string, 25)
	for i := range keys {
		keys[i] = fmt.Sprintf("cats/%03d.jpg", i)
	}
	up := &fakeUpserter{}
	tr, err := NewTransferrer(testConfig(), &fakeLister{keys: keys}, up)
	if err != nil {
		t.Fatalf("NewTransferrer failed: %v", err)
	}

	report, err := tr.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Objects != 25 {
		t.Errorf("expected 25 objects, got %d", report.Objects)
	}
	if report.Batches != 3 {
		t.Errorf("expected 3 batches of 10/10/5, got %d", report.Batches)
	}
	if report.RunID == "" {
		t.Error("expected a run id")
	}

	total := 0
	for _, b := range up.batches {
		total += len(b)
	}
	if total != 25 {
		t.Errorf("expected 25 records upserted, got %d", total)
	}
}

func TestRun_RecordShape(t *testing.T) {
	up := &fakeUpserter{}
	tr, err := NewTransferrer(testConfig(), &fakeLister{keys: []string{"cats/one.jpg"}}, up)
	if err != nil {
		t.Fatalf("NewTransferrer failed: %v", err)
	}
	if _, err := tr.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(up.batches) != 1 || len(up.batches[0]) != 1 {
		t.Fatalf("expected one record, got %v", up.batches)
	}
	rec := up.batches[0][0]

	sum := sha1.Sum([]byte("cats/one.jpg"))
	if rec["id"] != hex.EncodeToString(sum[:]) {
		t.Errorf("unexpected id %v", rec["id"])
	}
	if rec["image"] != "tos://images/cats/one.jpg" {
		t.Errorf("unexpected image uri %v", rec["image"])
	}
	if rec["created_at"] == "" {
		t.Error("expected created_at to be set")
	}
}

func TestRun_IdempotentIDs(t *testing.T) {
	cfg := testConfig()
	run := func() vikingdb.Record {
		up := &fakeUpserter{}
		tr, err := NewTransferrer(cfg, &fakeLister{keys: []string{"cats/one.jpg"}}, up)
		if err != nil {
			t.Fatalf("NewTransferrer failed: %v", err)
		}
		if _, err := tr.Run(context.Background()); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		return up.batches[0][0]
	}
	if run()["id"] != run()["id"] {
		t.Error("expected identical ids across runs for the same key")
	}
}

func TestRun_ContinuesPastFailedBatch(t *testing.T) {
	keys := make([]string, 30)
	for i := range keys {
		keys[i] = fmt.Sprintf("cats/%03d.jpg", i)
	}
	up := &fakeUpserter{failOn: 1}
	tr, err := NewTransferrer(testConfig(), &fakeLister{keys: keys}, up)
	if err != nil {
		t.Fatalf("NewTransferrer failed: %v", err)
	}

	report, err := tr.Run(context.Background())
	if err == nil {
		t.Fatal("expected a summary error for the failed batch")
	}
	if report.FailedBatches != 1 {
		t.Errorf("expected 1 failed batch, got %d", report.FailedBatches)
	}
	if report.FailedObjects != 10 {
		t.Errorf("expected 10 failed objects, got %d", report.FailedObjects)
	}
	if report.Batches != 3 {
		t.Errorf("expected all 3 batches attempted, got %d", report.Batches)
	}
	if report.Objects != 20 {
		t.Errorf("expected 20 transferred objects, got %d", report.Objects)
	}
}

func TestRun_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr, err := NewTransferrer(testConfig(), &fakeLister{keys: []string{"cats/one.jpg"}}, &fakeUpserter{})
	if err != nil {
		t.Fatalf("NewTransferrer failed: %v", err)
	}
	if _, err := tr.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRun_PropagatesListError(t *testing.T) {
	listErr := errors.New("bucket gone")
	tr, err := NewTransferrer(testConfig(), &fakeLister{keys: []string{"cats/one.jpg"}, err: listErr}, &fakeUpserter{})
	if err != nil {
		t.Fatalf("NewTransferrer failed: %v", err)
	}

	_, err = tr.Run(context.Background())
	if !errors.Is(err, listErr) {
		t.Errorf("expected list error, got %v", err)
	}
}

func TestNewTransferrer_Validation(t *testing.T) {
	if _, err := NewTransferrer(&Config{}, &fakeLister{}, &fakeUpserter{}); err == nil {
		t.Error("expected error for empty config")
	}
	if _, err := NewTransferrer(testConfig(), nil, &fakeUpserter{}); err == nil {
		t.Error("expected error for nil lister")
	}
	if _, err := NewTransferrer(testConfig(), &fakeLister{}, nil); err == nil {
		t.Error("expected error for nil upserter")
	}
}

func TestConfigValidate_Defaults(t *testing.T) {
	cfg := &Config{Bucket: "images", CollectionName: "docs"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if cfg.Workers != DefaultWorkers {
		t.Errorf("expected default workers %d, got %d", DefaultWorkers, cfg.Workers)
	}
	if cfg.BatchSize != DefaultBatchSize {
		t.Errorf("expected default batch size %d, got %d", DefaultBatchSize, cfg.BatchSize)
	}
}
