package vikingdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDeleteCollection_RequiresConfirmation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be sent without confirmation")
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	_, err := client.DeleteCollection(context.Background(), DeleteCollectionRequest{
		CollectionName: "docs",
	})
	if !errors.Is(err, ErrNotConfirmed) {
		t.Errorf("expected ErrNotConfirmed, got %v", err)
	}
}

func TestDeleteIndex_RequiresConfirmation(t *testing.T) {
	client := newTestClient(t, httptest.NewServer(http.NotFoundHandler()))
	_, err := client.DeleteIndex(context.Background(), DeleteIndexRequest{
		CollectionName: "docs",
		IndexName:      "docs_index",
	})
	if !errors.Is(err, ErrNotConfirmed) {
		t.Errorf("expected ErrNotConfirmed, got %v", err)
	}
}

func TestDeleteTask_RequiresConfirmation(t *testing.T) {
	client := newTestClient(t, httptest.NewServer(http.NotFoundHandler()))
	_, err := client.DeleteTask(context.Background(), "task-1", false)
	if !errors.Is(err, ErrNotConfirmed) {
		t.Errorf("expected ErrNotConfirmed, got %v", err)
	}
}

func TestRequireNameOrResourceID(t *testing.T) {
	tests := []struct {
		name       string
		collection string
		resourceID string
		wantErr    bool
	}{
		{"name only", "docs", "", false},
		{"resource id only", "", "rid-1", false},
		{"neither", "", "", true},
		{"both", "docs", "rid-1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := requireNameOrResourceID(tt.collection, tt.resourceID)
			if (err != nil) != tt.wantErr {
				t.Errorf("got err=%v, wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateIndexTuning(t *testing.T) {
	tests := []struct {
		name    string
		quota   int
		policy  string
		shards  int
		wantErr bool
	}{
		{"all zero values pass", 0, "", 0, false},
		{"valid full", 100, "custom", 4, false},
		{"quota too high", 20000, "", 0, true},
		{"bad policy", 0, "manual", 0, true},
		{"shards too high", 0, "", 500, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateIndexTuning(tt.quota, tt.policy, tt.shards)
			if (err != nil) != tt.wantErr {
				t.Errorf("got err=%v, wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateIndex_RejectsEmptyUpdate(t *testing.T) {
	client := newTestClient(t, httptest.NewServer(http.NotFoundHandler()))
	_, err := client.UpdateIndex(context.Background(), UpdateIndexRequest{
		CollectionName: "docs",
		IndexName:      "docs_index",
	})
	if err == nil {
		t.Error("expected error for update with no changes")
	}
}

func TestUpdateIndex_RejectsExplicitZeroValues(t *testing.T) {
	// A pointer to zero is an explicit out-of-range value, not "unset".
	client := newTestClient(t, httptest.NewServer(http.NotFoundHandler()))
	ctx := context.Background()

	zero := 0
	if _, err := client.UpdateIndex(ctx, UpdateIndexRequest{
		CollectionName: "docs",
		IndexName:      "docs_index",
		CpuQuota:       &zero,
	}); err == nil {
		t.Error("expected error for CpuQuota 0")
	}
	if _, err := client.UpdateIndex(ctx, UpdateIndexRequest{
		CollectionName: "docs",
		IndexName:      "docs_index",
		ShardCount:     &zero,
	}); err == nil {
		t.Error("expected error for ShardCount 0")
	}
	empty := ""
	if _, err := client.UpdateIndex(ctx, UpdateIndexRequest{
		CollectionName: "docs",
		IndexName:      "docs_index",
		ShardPolicy:    &empty,
	}); err == nil {
		t.Error("expected error for empty ShardPolicy")
	}
}

func TestUpdateIndex_ScalarIndexEmptySliceSerialized(t *testing.T) {
	// A pointer to an empty slice means "remove all scalar indexes" and
	// must appear on the wire, unlike a nil pointer.
	var body map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		w.Write(controlOK(OperationStatus{Message: "success"}))
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	empty := []string{}
	_, err := client.UpdateIndex(context.Background(), UpdateIndexRequest{
		CollectionName: "docs",
		IndexName:      "docs_index",
		ScalarIndex:    &empty,
	})
	if err != nil {
		t.Fatalf("UpdateIndex failed: %v", err)
	}
	raw, ok := body["ScalarIndex"]
	if !ok {
		t.Fatal("ScalarIndex missing from request body")
	}
	if string(raw) != "[]" {
		t.Errorf("expected ScalarIndex to be [], got %s", raw)
	}
}

func TestListAllCollections_Pagination(t *testing.T) {
	// Three pages of 100, 100, 50 with TotalCount 250.
	var pages []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ListCollectionsRequest
		json.NewDecoder(r.Body).Decode(&req)
		pages = append(pages, req.PageNumber)

		n := 100
		if req.PageNumber == 3 {
			n = 50
		}
		cols := make([]CollectionInfo, n)
		for i := range cols {
			cols[i].CollectionName = fmt.Sprintf("c-%d-%d", req.PageNumber, i)
		}
		w.Write(controlOK(ListCollectionsResult{Collections: cols, TotalCount: 250}))
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	all, err := client.ListAllCollections(context.Background(), "default")
	if err != nil {
		t.Fatalf("ListAllCollections failed: %v", err)
	}
	if len(all) != 250 {
		t.Errorf("expected 250 collections, got %d", len(all))
	}
	if len(pages) != 3 {
		t.Errorf("expected 3 page requests, got %v", pages)
	}
}

func TestListAllCollections_TerminatesOnEmptyPage(t *testing.T) {
	// A lying TotalCount must not cause an infinite loop.
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write(controlOK(ListCollectionsResult{Collections: nil, TotalCount: 9999}))
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	all, err := client.ListAllCollections(context.Background(), "default")
	if err != nil {
		t.Fatalf("ListAllCollections failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected no collections, got %d", len(all))
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestCreateCollection_Validation(t *testing.T) {
	client := newTestClient(t, httptest.NewServer(http.NotFoundHandler()))

	_, err := client.CreateCollection(context.Background(), CreateCollectionRequest{
		Fields: []Field{{FieldName: "id", FieldType: "string", IsPrimaryKey: true}},
	})
	if err == nil {
		t.Error("expected error for missing CollectionName")
	}

	_, err = client.CreateCollection(context.Background(), CreateCollectionRequest{
		CollectionName: "docs",
	})
	if err == nil {
		t.Error("expected error for missing Fields")
	}
}

func TestGetTask_WireShape(t *testing.T) {
	var body map[string]interface{}
	var action string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		action = r.URL.Query().Get("Action")
		json.NewDecoder(r.Body).Decode(&body)
		w.Write(controlOK(TaskInfo{TaskID: "task-1", TaskType: TaskTypeFilterDelete, TaskStatus: "running"}))
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	task, err := client.GetTask(context.Background(), "task-1")
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if action != actionGetTask {
		t.Errorf("expected action %s, got %s", actionGetTask, action)
	}
	if body["TaskId"] != "task-1" {
		t.Errorf("expected TaskId in body, got %v", body)
	}
	if task.TaskStatus != "running" {
		t.Errorf("expected running, got %q", task.TaskStatus)
	}
}

func TestConfirmTask_UsesUpdateAction(t *testing.T) {
	var action string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		action = r.URL.Query().Get("Action")
		w.Write(controlOK(OperationStatus{Message: "success"}))
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	if _, err := client.ConfirmTask(context.Background(), "task-1"); err != nil {
		t.Fatalf("ConfirmTask failed: %v", err)
	}
	if action != actionUpdateTask {
		t.Errorf("expected action %s, got %s", actionUpdateTask, action)
	}
}
