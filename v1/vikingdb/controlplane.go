package vikingdb

import (
	"context"
	"fmt"
)

// Control-plane actions. Each is carried as the Action query parameter
// of a POST to "/" on the control-plane host.
const (
	actionCreateCollection = "CreateVikingdbCollection"
	actionGetCollection    = "GetVikingdbCollection"
	actionUpdateCollection = "UpdateVikingdbCollection"
	actionDeleteCollection = "DeleteVikingdbCollection"
	actionListCollections  = "ListVikingdbCollection"

	actionCreateIndex = "CreateVikingdbIndex"
	actionGetIndex    = "GetVikingdbIndex"
	actionUpdateIndex = "UpdateVikingdbIndex"
	actionDeleteIndex = "DeleteVikingdbIndex"
	actionListIndexes = "ListVikingdbIndex"

	actionCreateTask = "CreateVikingdbTask"
	actionGetTask    = "GetVikingdbTask"
	actionUpdateTask = "UpdateVikingdbTask"
	actionDeleteTask = "DeleteVikingdbTask"
	actionListTasks  = "ListVikingdbTask"
)

// Background task types.
const (
	TaskTypeFilterDelete = "filter_delete"
	TaskTypeFilterUpdate = "filter_update"
	TaskTypeDataImport   = "data_import"
	TaskTypeDataExport   = "data_export"
)

// Field describes one collection field.
type Field struct {
	FieldName    string      `json:"FieldName"`
	FieldType    string      `json:"FieldType"`
	IsPrimaryKey bool        `json:"IsPrimaryKey,omitempty"`
	DefaultValue interface{} `json:"DefaultValue,omitempty"`
}

// DenseVectorize configures server-side vectorization of a text or
// image field with a managed embedding model.
type DenseVectorize struct {
	ModelName    string `json:"ModelName"`
	ModelVersion string `json:"ModelVersion,omitempty"`
	TextField    string `json:"TextField,omitempty"`
	ImageField   string `json:"ImageField,omitempty"`
	Dimension    int    `json:"Dimension,omitempty"`
}

// Vectorize wraps the collection's vectorization settings.
type Vectorize struct {
	Dense *DenseVectorize `json:"Dense,omitempty"`
}

// CollectionInfo is the control-plane view of a collection.
type CollectionInfo struct {
	ProjectName          string     `json:"ProjectName"`
	ResourceID           string     `json:"ResourceId"`
	CollectionName       string     `json:"CollectionName"`
	Description          string     `json:"Description"`
	Fields               []Field    `json:"Fields"`
	Vectorize            *Vectorize `json:"Vectorize,omitempty"`
	IndexNames           []string   `json:"IndexNames,omitempty"`
	EnableKeywordsSearch bool       `json:"EnableKeywordsSearch,omitempty"`
	CreateTime           string     `json:"CreateTime,omitempty"`
	UpdateTime           string     `json:"UpdateTime,omitempty"`
	UpdatePerson         string     `json:"UpdatePerson,omitempty"`
}

// OperationStatus is the generic result of mutating control-plane calls;
// Message is "success" on success.
type OperationStatus struct {
	ResourceID string `json:"ResourceId,omitempty"`
	Message    string `json:"Message,omitempty"`
}

// CreateCollectionRequest creates a collection, optionally with managed
// vectorization.
type CreateCollectionRequest struct {
	ProjectName    string     `json:"ProjectName"`
	CollectionName string     `json:"CollectionName"`
	Description    string     `json:"Description,omitempty"`
	Fields         []Field    `json:"Fields"`
	Vectorize      *Vectorize `json:"Vectorize,omitempty"`
}

// CreateCollection creates a new collection.
func (c *Client) CreateCollection(ctx context.Context, req CreateCollectionRequest) (*OperationStatus, error) {
	if req.CollectionName == "" {
		return nil, fmt.Errorf("vikingdb: CollectionName is required")
	}
	if len(req.Fields) == 0 {
		return nil, fmt.Errorf("vikingdb: at least one field is required")
	}
	var out OperationStatus
	if err := c.callControlPlane(ctx, actionCreateCollection, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCollectionRequest identifies a collection by name or resource ID;
// exactly one of the two must be set.
type GetCollectionRequest struct {
	ProjectName    string `json:"ProjectName"`
	CollectionName string `json:"CollectionName,omitempty"`
	ResourceID     string `json:"ResourceId,omitempty"`
}

// GetCollection retrieves collection details.
func (c *Client) GetCollection(ctx context.Context, req GetCollectionRequest) (*CollectionInfo, error) {
	if err := requireNameOrResourceID(req.CollectionName, req.ResourceID); err != nil {
		return nil, err
	}
	var out CollectionInfo
	if err := c.callControlPlane(ctx, actionGetCollection, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCollectionRequest updates a collection's description and fields.
// Fields must carry the full field list, unchanged fields included.
type UpdateCollectionRequest struct {
	ProjectName    string  `json:"ProjectName"`
	CollectionName string  `json:"CollectionName,omitempty"`
	ResourceID     string  `json:"ResourceId,omitempty"`
	Description    string  `json:"Description,omitempty"`
	Fields         []Field `json:"Fields"`
}

// UpdateCollection applies a collection update.
func (c *Client) UpdateCollection(ctx context.Context, req UpdateCollectionRequest) (*OperationStatus, error) {
	if err := requireNameOrResourceID(req.CollectionName, req.ResourceID); err != nil {
		return nil, err
	}
	var out OperationStatus
	if err := c.callControlPlane(ctx, actionUpdateCollection, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCollectionRequest deletes a collection and all its data.
// Confirmed must be true; it is never serialized.
type DeleteCollectionRequest struct {
	ProjectName    string `json:"ProjectName"`
	CollectionName string `json:"CollectionName,omitempty"`
	ResourceID     string `json:"ResourceId,omitempty"`
	Confirmed      bool   `json:"-"`
}

// DeleteCollection deletes a collection. Irreversible.
func (c *Client) DeleteCollection(ctx context.Context, req DeleteCollectionRequest) (*OperationStatus, error) {
	if !req.Confirmed {
		return nil, ErrNotConfirmed
	}
	if err := requireNameOrResourceID(req.CollectionName, req.ResourceID); err != nil {
		return nil, err
	}
	var out OperationStatus
	if err := c.callControlPlane(ctx, actionDeleteCollection, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCollectionsRequest pages through a project's collections.
type ListCollectionsRequest struct {
	ProjectName string `json:"ProjectName"`
	PageNumber  int    `json:"PageNumber"`
	PageSize    int    `json:"PageSize"`
}

// ListCollectionsResult is one page of collections.
type ListCollectionsResult struct {
	Collections []CollectionInfo `json:"Collections"`
	TotalCount  int              `json:"TotalCount"`
}

// ListCollections returns one page of collections.
func (c *Client) ListCollections(ctx context.Context, req ListCollectionsRequest) (*ListCollectionsResult, error) {
	if req.PageNumber <= 0 {
		req.PageNumber = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 100
	}
	var out ListCollectionsResult
	if err := c.callControlPlane(ctx, actionListCollections, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAllCollections walks every page and returns the full set.
func (c *Client) ListAllCollections(ctx context.Context, projectName string) ([]CollectionInfo, error) {
	var all []CollectionInfo
	for page := 1; ; page++ {
		res, err := c.ListCollections(ctx, ListCollectionsRequest{
			ProjectName: projectName,
			PageNumber:  page,
			PageSize:    100,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, res.Collections...)
		if len(res.Collections) == 0 || len(all) >= res.TotalCount {
			return all, nil
		}
	}
}

// VectorIndex configures the ANN index strategy. The strategies
// themselves are service-internal; values are passed through opaquely.
type VectorIndex struct {
	IndexType string `json:"IndexType,omitempty"` // e.g. "hnsw", "flat"
	Distance  string `json:"Distance,omitempty"`  // e.g. "cosine", "l2", "ip"
	Quant     string `json:"Quant,omitempty"`     // e.g. "int8", "float"
}

// IndexInfo is the control-plane view of an index.
type IndexInfo struct {
	ProjectName    string       `json:"ProjectName"`
	CollectionName string       `json:"CollectionName"`
	IndexName      string       `json:"IndexName"`
	Description    string       `json:"Description,omitempty"`
	Status         string       `json:"Status,omitempty"`
	VectorIndex    *VectorIndex `json:"VectorIndex,omitempty"`
	ScalarIndex    []string     `json:"ScalarIndex,omitempty"`
	CpuQuota       int          `json:"CpuQuota,omitempty"`
	ShardPolicy    string       `json:"ShardPolicy,omitempty"`
	ShardCount     int          `json:"ShardCount,omitempty"`
	CreateTime     string       `json:"CreateTime,omitempty"`
	UpdateTime     string       `json:"UpdateTime,omitempty"`
}

// CreateIndexRequest creates an index on a collection.
type CreateIndexRequest struct {
	ProjectName    string       `json:"ProjectName"`
	CollectionName string       `json:"CollectionName,omitempty"`
	ResourceID     string       `json:"ResourceId,omitempty"`
	IndexName      string       `json:"IndexName"`
	Description    string       `json:"Description,omitempty"`
	VectorIndex    *VectorIndex `json:"VectorIndex,omitempty"`
	ScalarIndex    []string     `json:"ScalarIndex,omitempty"`
	CpuQuota       int          `json:"CpuQuota,omitempty"`
	ShardPolicy    string       `json:"ShardPolicy,omitempty"`
	ShardCount     int          `json:"ShardCount,omitempty"`
}

// CreateIndex creates a new index.
func (c *Client) CreateIndex(ctx context.Context, req CreateIndexRequest) (*OperationStatus, error) {
	if req.IndexName == "" {
		return nil, fmt.Errorf("vikingdb: IndexName is required")
	}
	if err := requireNameOrResourceID(req.CollectionName, req.ResourceID); err != nil {
		return nil, err
	}
	if err := validateIndexTuning(req.CpuQuota, req.ShardPolicy, req.ShardCount); err != nil {
		return nil, err
	}
	var out OperationStatus
	if err := c.callControlPlane(ctx, actionCreateIndex, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetIndexRequest identifies an index within a collection.
type GetIndexRequest struct {
	ProjectName    string `json:"ProjectName"`
	CollectionName string `json:"CollectionName,omitempty"`
	ResourceID     string `json:"ResourceId,omitempty"`
	IndexName      string `json:"IndexName"`
}

// GetIndex retrieves index details.
func (c *Client) GetIndex(ctx context.Context, req GetIndexRequest) (*IndexInfo, error) {
	if req.IndexName == "" {
		return nil, fmt.Errorf("vikingdb: IndexName is required")
	}
	if err := requireNameOrResourceID(req.CollectionName, req.ResourceID); err != nil {
		return nil, err
	}
	var out IndexInfo
	if err := c.callControlPlane(ctx, actionGetIndex, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// IndexFilter narrows a ListIndexes call.
type IndexFilter struct {
	CollectionName   []string `json:"CollectionName,omitempty"`
	Status           []string `json:"Status,omitempty"`
	IndexNameKeyword string   `json:"IndexNameKeyword,omitempty"`
}

// ListIndexesRequest pages through a project's indexes.
type ListIndexesRequest struct {
	ProjectName string       `json:"ProjectName"`
	PageNumber  int          `json:"PageNumber"`
	PageSize    int          `json:"PageSize"`
	Filter      *IndexFilter `json:"Filter,omitempty"`
}

// ListIndexesResult is one page of indexes.
type ListIndexesResult struct {
	Indexes    []IndexInfo `json:"Indexes"`
	TotalCount int         `json:"TotalCount"`
}

// ListIndexes returns one page of indexes.
func (c *Client) ListIndexes(ctx context.Context, req ListIndexesRequest) (*ListIndexesResult, error) {
	if req.PageNumber <= 0 {
		req.PageNumber = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 100
	}
	var out ListIndexesResult
	if err := c.callControlPlane(ctx, actionListIndexes, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAllIndexes walks every page and returns the full set.
func (c *Client) ListAllIndexes(ctx context.Context, projectName string, filter *IndexFilter) ([]IndexInfo, error) {
	var all []IndexInfo
	for page := 1; ; page++ {
		res, err := c.ListIndexes(ctx, ListIndexesRequest{
			ProjectName: projectName,
			PageNumber:  page,
			PageSize:    100,
			Filter:      filter,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, res.Indexes...)
		if len(res.Indexes) == 0 || len(all) >= res.TotalCount {
			return all, nil
		}
	}
}

// UpdateIndexRequest updates index settings. Only non-nil fields are
// sent; nil means keep the current value. ScalarIndex distinguishes nil
// (keep) from an empty slice (remove all scalar indexes).
type UpdateIndexRequest struct {
	ProjectName    string    `json:"ProjectName"`
	CollectionName string    `json:"CollectionName,omitempty"`
	ResourceID     string    `json:"ResourceId,omitempty"`
	IndexName      string    `json:"IndexName"`
	Description    *string   `json:"Description,omitempty"`
	CpuQuota       *int      `json:"CpuQuota,omitempty"`
	ShardPolicy    *string   `json:"ShardPolicy,omitempty"`
	ShardCount     *int      `json:"ShardCount,omitempty"`
	ScalarIndex    *[]string `json:"ScalarIndex,omitempty"`
}

// UpdateIndex applies an index update.
func (c *Client) UpdateIndex(ctx context.Context, req UpdateIndexRequest) (*OperationStatus, error) {
	if req.IndexName == "" {
		return nil, fmt.Errorf("vikingdb: IndexName is required")
	}
	if err := requireNameOrResourceID(req.CollectionName, req.ResourceID); err != nil {
		return nil, err
	}
	if req.Description == nil && req.CpuQuota == nil && req.ShardPolicy == nil && req.ShardCount == nil && req.ScalarIndex == nil {
		return nil, fmt.Errorf("vikingdb: nothing to update")
	}
	// A non-nil pointer is an explicit value, zero included, so the
	// ranges are checked on the dereferenced values directly.
	if req.CpuQuota != nil && (*req.CpuQuota < 1 || *req.CpuQuota > 10240) {
		return nil, fmt.Errorf("vikingdb: CpuQuota must be between 1 and 10240")
	}
	if req.ShardPolicy != nil && *req.ShardPolicy != "auto" && *req.ShardPolicy != "custom" {
		return nil, fmt.Errorf("vikingdb: ShardPolicy must be \"auto\" or \"custom\"")
	}
	if req.ShardCount != nil && (*req.ShardCount < 1 || *req.ShardCount > 256) {
		return nil, fmt.Errorf("vikingdb: ShardCount must be between 1 and 256")
	}
	var out OperationStatus
	if err := c.callControlPlane(ctx, actionUpdateIndex, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteIndexRequest deletes an index. Confirmed must be true.
type DeleteIndexRequest struct {
	ProjectName    string `json:"ProjectName"`
	CollectionName string `json:"CollectionName,omitempty"`
	ResourceID     string `json:"ResourceId,omitempty"`
	IndexName      string `json:"IndexName"`
	Confirmed      bool   `json:"-"`
}

// DeleteIndex deletes an index. Irreversible.
func (c *Client) DeleteIndex(ctx context.Context, req DeleteIndexRequest) (*OperationStatus, error) {
	if !req.Confirmed {
		return nil, ErrNotConfirmed
	}
	if req.IndexName == "" {
		return nil, fmt.Errorf("vikingdb: IndexName is required")
	}
	if err := requireNameOrResourceID(req.CollectionName, req.ResourceID); err != nil {
		return nil, err
	}
	var out OperationStatus
	if err := c.callControlPlane(ctx, actionDeleteIndex, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FilterCond is one condition of a task's record filter. The inner keys
// are lower-case on the wire, unlike the surrounding config.
type FilterCond struct {
	Op    string      `json:"op"`    // e.g. "range", "must", "must_not"
	Field string      `json:"field"` // target field name
	Value interface{} `json:"value"`
}

// TaskConfig carries per-type task settings.
type TaskConfig struct {
	CollectionName string       `json:"CollectionName,omitempty"`
	FilterConds    []FilterCond `json:"FilterConds,omitempty"`
	UpdateFields   interface{}  `json:"UpdateFields,omitempty"`
	NeedConfirm    *bool        `json:"NeedConfirm,omitempty"`
	TosPath        string       `json:"TosPath,omitempty"`
}

// TaskProcessInfo reports task progress.
type TaskProcessInfo struct {
	TaskProgress interface{} `json:"TaskProgress,omitempty"`
	ErrorMessage string      `json:"ErrorMessage,omitempty"`
}

// TaskInfo is the control-plane view of a background task.
type TaskInfo struct {
	TaskID          string           `json:"TaskId"`
	TaskType        string           `json:"TaskType"`
	TaskStatus      string           `json:"TaskStatus"`
	TaskConfig      *TaskConfig      `json:"TaskConfig,omitempty"`
	TaskProcessInfo *TaskProcessInfo `json:"TaskProcessInfo,omitempty"`
	CreateTime      string           `json:"CreateTime,omitempty"`
	UpdateTime      string           `json:"UpdateTime,omitempty"`
	UpdatePerson    string           `json:"UpdatePerson,omitempty"`
}

// CreateTaskRequest creates a background task (filter delete/update,
// data import/export).
type CreateTaskRequest struct {
	ProjectName    string      `json:"ProjectName"`
	CollectionName string      `json:"CollectionName,omitempty"`
	TaskType       string      `json:"TaskType"`
	TaskConfig     *TaskConfig `json:"TaskConfig,omitempty"`
}

// CreateTaskResult carries the new task's ID.
type CreateTaskResult struct {
	TaskID string `json:"TaskId"`
}

// CreateTask creates a background task.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*CreateTaskResult, error) {
	if req.TaskType == "" {
		return nil, fmt.Errorf("vikingdb: TaskType is required")
	}
	var out CreateTaskResult
	if err := c.callControlPlane(ctx, actionCreateTask, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTask retrieves one task by ID.
func (c *Client) GetTask(ctx context.Context, taskID string) (*TaskInfo, error) {
	if taskID == "" {
		return nil, fmt.Errorf("vikingdb: TaskId is required")
	}
	body := struct {
		TaskID string `json:"TaskId"`
	}{TaskID: taskID}
	var out TaskInfo
	if err := c.callControlPlane(ctx, actionGetTask, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTasksRequest pages through tasks, optionally filtered.
type ListTasksRequest struct {
	ProjectName    string `json:"ProjectName"`
	CollectionName string `json:"CollectionName,omitempty"`
	TaskType       string `json:"TaskType,omitempty"`
	TaskStatus     string `json:"TaskStatus,omitempty"`
	TaskID         string `json:"TaskId,omitempty"`
	PageNumber     int    `json:"PageNumber"`
	PageSize       int    `json:"PageSize"`
}

// ListTasksResult is one page of tasks.
type ListTasksResult struct {
	Tasks      []TaskInfo `json:"Tasks"`
	TotalCount int        `json:"TotalCount"`
}

// ListTasks returns one page of tasks.
func (c *Client) ListTasks(ctx context.Context, req ListTasksRequest) (*ListTasksResult, error) {
	if req.PageNumber <= 0 {
		req.PageNumber = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}
	var out ListTasksResult
	if err := c.callControlPlane(ctx, actionListTasks, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConfirmTask moves a task in "confirm" status to "confirmed" so it
// starts executing. Only valid for tasks created with NeedConfirm.
func (c *Client) ConfirmTask(ctx context.Context, taskID string) (*OperationStatus, error) {
	if taskID == "" {
		return nil, fmt.Errorf("vikingdb: TaskId is required")
	}
	body := struct {
		TaskID string `json:"TaskId"`
	}{TaskID: taskID}
	var out OperationStatus
	if err := c.callControlPlane(ctx, actionUpdateTask, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTask removes a task permanently. Confirmed must be true.
func (c *Client) DeleteTask(ctx context.Context, taskID string, confirmed bool) (*OperationStatus, error) {
	if !confirmed {
		return nil, ErrNotConfirmed
	}
	if taskID == "" {
		return nil, fmt.Errorf("vikingdb: TaskId is required")
	}
	body := struct {
		TaskID string `json:"TaskId"`
	}{TaskID: taskID}
	var out OperationStatus
	if err := c.callControlPlane(ctx, actionDeleteTask, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func requireNameOrResourceID(name, resourceID string) error {
	if name == "" && resourceID == "" {
		return fmt.Errorf("vikingdb: either CollectionName or ResourceId is required")
	}
	if name != "" && resourceID != "" {
		return fmt.Errorf("vikingdb: CollectionName and ResourceId are mutually exclusive")
	}
	return nil
}

func validateIndexTuning(cpuQuota int, shardPolicy string, shardCount int) error {
	if cpuQuota != 0 && (cpuQuota < 1 || cpuQuota > 10240) {
		return fmt.Errorf("vikingdb: CpuQuota must be between 1 and 10240")
	}
	if shardPolicy != "" && shardPolicy != "auto" && shardPolicy != "custom" {
		return fmt.Errorf("vikingdb: ShardPolicy must be \"auto\" or \"custom\"")
	}
	if shardCount != 0 && (shardCount < 1 || shardCount > 256) {
		return fmt.Errorf("vikingdb: ShardCount must be between 1 and 256")
	}
	return nil
}
