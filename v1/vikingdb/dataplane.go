package vikingdb

import (
	"context"
	"fmt"
)

// Data-plane paths. Each operation POSTs to its own path on the
// data-plane host; there is no Action/Version query.
const (
	pathUpsert            = "/api/vikingdb/data/upsert"
	pathUpdate            = "/api/vikingdb/data/update"
	pathDelete            = "/api/vikingdb/data/delete"
	pathFetchInCollection = "/api/vikingdb/data/fetch_in_collection"
	pathAggregate         = "/api/vikingdb/data/agg"

	pathVectorSearch     = "/api/vikingdb/data/search/vector"
	pathMultiModalSearch = "/api/vikingdb/data/search/multi_modal"
	pathKeywordSearch    = "/api/vikingdb/data/search/keywords"
	pathScalarSearch     = "/api/vikingdb/data/search/scalar"
	pathIDSearch         = "/api/vikingdb/data/search/id"
	pathRandomSearch     = "/api/vikingdb/data/search/random"
)

// maxIDsPerRequest caps id-list operations; the service rejects larger
// batches.
const maxIDsPerRequest = 100

// maxKeywords caps keyword search terms per request.
const maxKeywords = 10

// Record is one data row keyed by field name. The primary key field is
// part of the map like any other field.
type Record map[string]interface{}

// RecordItem is a fetched record: its primary key and its fields.
type RecordItem struct {
	ID     interface{}            `json:"id"`
	Fields map[string]interface{} `json:"fields"`
}

// SearchResultItem is one search hit.
type SearchResultItem struct {
	ID       interface{}            `json:"id"`
	Score    float64                `json:"score"`
	AnnScore float64                `json:"ann_score"`
	Fields   map[string]interface{} `json:"fields"`
}

// searchData is the shared result wrapper of all search variants.
type searchData struct {
	Data []SearchResultItem `json:"data"`
}

// Upsert inserts or replaces records in a collection. For vectorized
// collections the service computes embeddings server-side.
func (c *Client) Upsert(ctx context.Context, collectionName string, records []Record) error {
	if collectionName == "" {
		return fmt.Errorf("vikingdb: collection_name is required")
	}
	if len(records) == 0 {
		return fmt.Errorf("vikingdb: no records to upsert")
	}
	body := struct {
		CollectionName string   `json:"collection_name"`
		Data           []Record `json:"data"`
	}{CollectionName: collectionName, Data: records}
	return c.callDataPlane(ctx, "upsert", pathUpsert, body, nil)
}

// UpdateRecords partially updates existing records. Each record must
// carry its primary key plus the fields to change; vector fields require
// the full vector.
func (c *Client) UpdateRecords(ctx context.Context, collectionName string, records []Record) error {
	if collectionName == "" {
		return fmt.Errorf("vikingdb: collection_name is required")
	}
	if len(records) == 0 {
		return fmt.Errorf("vikingdb: no records to update")
	}
	body := struct {
		CollectionName string   `json:"collection_name"`
		Data           []Record `json:"data"`
	}{CollectionName: collectionName, Data: records}
	return c.callDataPlane(ctx, "update", pathUpdate, body, nil)
}

// FetchRequest retrieves records by primary key.
type FetchRequest struct {
	CollectionName string   `json:"collection_name"`
	IDs            []string `json:"ids"`
	OutputFields   []string `json:"output_fields,omitempty"`
}

// FetchResult holds the found records and the ids that did not exist.
type FetchResult struct {
	Fetch       []RecordItem `json:"fetch"`
	IDsNotExist []string     `json:"ids_not_exist"`
}

// Fetch retrieves records by ID from a collection.
func (c *Client) Fetch(ctx context.Context, req FetchRequest) (*FetchResult, error) {
	if req.CollectionName == "" {
		return nil, fmt.Errorf("vikingdb: collection_name is required")
	}
	if len(req.IDs) == 0 {
		return nil, fmt.Errorf("vikingdb: no ids to fetch")
	}
	var out FetchResult
	if err := c.callDataPlane(ctx, "fetch", pathFetchInCollection, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRequest removes records by ID, or everything when DeleteAll is
// set. DeleteAll additionally requires Confirmed; neither flag is
// serialized as such — DeleteAll maps to the wire field del_all.
// Deletion is asynchronous on the service side: deleted records may keep
// appearing in search results for a few minutes.
type DeleteRequest struct {
	CollectionName string   `json:"collection_name"`
	IDs            []string `json:"ids,omitempty"`
	DeleteAll      bool     `json:"del_all,omitempty"`
	Confirmed      bool     `json:"-"`
}

// Delete removes records from a collection.
func (c *Client) Delete(ctx context.Context, req DeleteRequest) error {
	if req.CollectionName == "" {
		return fmt.Errorf("vikingdb: collection_name is required")
	}
	if req.DeleteAll {
		if !req.Confirmed {
			return ErrNotConfirmed
		}
		if len(req.IDs) > 0 {
			return fmt.Errorf("vikingdb: ids and del_all are mutually exclusive")
		}
	} else {
		if len(req.IDs) == 0 {
			return fmt.Errorf("vikingdb: no ids to delete")
		}
		if len(req.IDs) > maxIDsPerRequest {
			return ErrTooManyIDs
		}
	}
	return c.callDataPlane(ctx, "delete", pathDelete, req, nil)
}

// VectorSearchRequest performs ANN search with a caller-supplied dense
// vector.
type VectorSearchRequest struct {
	CollectionName string                 `json:"collection_name"`
	IndexName      string                 `json:"index_name"`
	DenseVector    []float64              `json:"dense_vector"`
	Limit          int                    `json:"limit"`
	OutputFields   []string               `json:"output_fields,omitempty"`
	Filter         map[string]interface{} `json:"filter,omitempty"`
}

// VectorSearch runs a dense-vector similarity search.
func (c *Client) VectorSearch(ctx context.Context, req VectorSearchRequest) ([]SearchResultItem, error) {
	if err := requireSearchTarget(req.CollectionName, req.IndexName); err != nil {
		return nil, err
	}
	if len(req.DenseVector) == 0 {
		return nil, fmt.Errorf("vikingdb: dense_vector is required")
	}
	if req.Limit <= 0 {
		req.Limit = 10
	}
	var out searchData
	if err := c.callDataPlane(ctx, "vector_search", pathVectorSearch, req, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// MultiModalSearchRequest searches a vectorized collection by text,
// image, or both fused. At least one of Text and Image must be set;
// Image is an object-store URI (tos://bucket/key).
type MultiModalSearchRequest struct {
	CollectionName  string   `json:"collection_name"`
	IndexName       string   `json:"index_name"`
	Text            string   `json:"text,omitempty"`
	Image           string   `json:"image,omitempty"`
	Limit           int      `json:"limit"`
	NeedInstruction bool     `json:"need_instruction,omitempty"`
	OutputFields    []string `json:"output_fields,omitempty"`
}

// MultiModalSearch runs text-to-image, image-to-image or fused search.
func (c *Client) MultiModalSearch(ctx context.Context, req MultiModalSearchRequest) ([]SearchResultItem, error) {
	if err := requireSearchTarget(req.CollectionName, req.IndexName); err != nil {
		return nil, err
	}
	if req.Text == "" && req.Image == "" {
		return nil, fmt.Errorf("vikingdb: at least one of text and image is required")
	}
	if req.Limit <= 0 {
		req.Limit = 10
	}
	var out searchData
	if err := c.callDataPlane(ctx, "multi_modal_search", pathMultiModalSearch, req, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// KeywordSearchRequest searches by keywords (max 10 per request) against
// a collection with keyword search enabled.
type KeywordSearchRequest struct {
	CollectionName string   `json:"collection_name"`
	IndexName      string   `json:"index_name"`
	Keywords       []string `json:"keywords"`
	Limit          int      `json:"limit"`
	CaseSensitive  bool     `json:"case_sensitive"`
	OutputFields   []string `json:"output_fields,omitempty"`
}

// KeywordSearch runs a keyword search.
func (c *Client) KeywordSearch(ctx context.Context, req KeywordSearchRequest) ([]SearchResultItem, error) {
	if err := requireSearchTarget(req.CollectionName, req.IndexName); err != nil {
		return nil, err
	}
	if len(req.Keywords) == 0 {
		return nil, fmt.Errorf("vikingdb: keywords are required")
	}
	if len(req.Keywords) > maxKeywords {
		return nil, fmt.Errorf("vikingdb: at most %d keywords per request", maxKeywords)
	}
	if req.Limit <= 0 {
		req.Limit = 10
	}
	var out searchData
	if err := c.callDataPlane(ctx, "keyword_search", pathKeywordSearch, req, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// ScalarSearchRequest sorts records by a scalar-indexed field.
type ScalarSearchRequest struct {
	CollectionName string   `json:"collection_name"`
	IndexName      string   `json:"index_name"`
	Field          string   `json:"field"`
	Order          string   `json:"order"` // "asc" or "desc"
	Limit          int      `json:"limit"`
	OutputFields   []string `json:"output_fields,omitempty"`
}

// ScalarSearch returns records ordered by a scalar field.
func (c *Client) ScalarSearch(ctx context.Context, req ScalarSearchRequest) ([]SearchResultItem, error) {
	if err := requireSearchTarget(req.CollectionName, req.IndexName); err != nil {
		return nil, err
	}
	if req.Field == "" {
		return nil, fmt.Errorf("vikingdb: field is required")
	}
	if req.Order != "asc" && req.Order != "desc" {
		return nil, fmt.Errorf("vikingdb: order must be \"asc\" or \"desc\"")
	}
	if req.Limit <= 0 {
		req.Limit = 10
	}
	var out searchData
	if err := c.callDataPlane(ctx, "scalar_search", pathScalarSearch, req, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// IDSearchRequest looks up records by primary key through the search
// surface. The wire field is "id", not "ids".
type IDSearchRequest struct {
	CollectionName string   `json:"collection_name"`
	IndexName      string   `json:"index_name"`
	IDs            []string `json:"id"`
	OutputFields   []string `json:"output_fields,omitempty"`
}

// IDSearch performs exact lookup by primary key.
func (c *Client) IDSearch(ctx context.Context, req IDSearchRequest) ([]SearchResultItem, error) {
	if err := requireSearchTarget(req.CollectionName, req.IndexName); err != nil {
		return nil, err
	}
	if len(req.IDs) == 0 {
		return nil, fmt.Errorf("vikingdb: ids are required")
	}
	var out searchData
	if err := c.callDataPlane(ctx, "id_search", pathIDSearch, req, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// RandomSearchRequest samples random records from an index.
type RandomSearchRequest struct {
	CollectionName string   `json:"collection_name"`
	IndexName      string   `json:"index_name"`
	Limit          int      `json:"limit"`
	OutputFields   []string `json:"output_fields,omitempty"`
}

// RandomSearch returns random records.
func (c *Client) RandomSearch(ctx context.Context, req RandomSearchRequest) ([]SearchResultItem, error) {
	if err := requireSearchTarget(req.CollectionName, req.IndexName); err != nil {
		return nil, err
	}
	if req.Limit <= 0 {
		req.Limit = 10
	}
	var out searchData
	if err := c.callDataPlane(ctx, "random_search", pathRandomSearch, req, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// AggregateRequest runs an aggregation over an index.
type AggregateRequest struct {
	CollectionName string                 `json:"collection_name"`
	IndexName      string                 `json:"index_name"`
	Op             string                 `json:"op"` // e.g. "count"
	Field          string                 `json:"field,omitempty"`
	Filter         map[string]interface{} `json:"filter,omitempty"`
}

// AggregateResult maps group keys to aggregate values; the total lives
// under "__TOTAL__".
type AggregateResult struct {
	Agg map[string]interface{} `json:"agg"`
}

// Aggregate runs an aggregation.
func (c *Client) Aggregate(ctx context.Context, req AggregateRequest) (*AggregateResult, error) {
	if err := requireSearchTarget(req.CollectionName, req.IndexName); err != nil {
		return nil, err
	}
	if req.Op == "" {
		return nil, fmt.Errorf("vikingdb: op is required")
	}
	var out AggregateResult
	if err := c.callDataPlane(ctx, "aggregate", pathAggregate, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Count returns the total number of records in a collection, via the
// count aggregation.
func (c *Client) Count(ctx context.Context, collectionName, indexName string) (int64, error) {
	res, err := c.Aggregate(ctx, AggregateRequest{
		CollectionName: collectionName,
		IndexName:      indexName,
		Op:             "count",
	})
	if err != nil {
		return 0, err
	}
	total, ok := res.Agg["__TOTAL__"]
	if !ok {
		return 0, fmt.Errorf("vikingdb: count result missing __TOTAL__")
	}
	// encoding/json decodes every number in an interface{} as float64.
	v, ok := total.(float64)
	if !ok {
		return 0, fmt.Errorf("vikingdb: unexpected count type %T", total)
	}
	return int64(v), nil
}

func requireSearchTarget(collectionName, indexName string) error {
	if collectionName == "" {
		return fmt.Errorf("vikingdb: collection_name is required")
	}
	if indexName == "" {
		return fmt.Errorf("vikingdb: index_name is required")
	}
	return nil
}
