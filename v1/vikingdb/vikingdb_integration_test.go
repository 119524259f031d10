package vikingdb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylarkhq/vikingdb-go/v1/signer"
)

// TestIntegration_CollectionRoundTrip exercises a live deployment. It
// needs VIKINGDB_AK/VIKINGDB_SK plus the host/region variables and an
// existing collection named by VIKINGDB_TEST_COLLECTION; it is skipped
// otherwise.
func TestIntegration_CollectionRoundTrip(t *testing.T) {
	collection := os.Getenv("VIKINGDB_TEST_COLLECTION")
	if collection == "" {
		t.Skip("VIKINGDB_TEST_COLLECTION not set, skipping integration test")
	}

	creds, err := signer.NewCredentialsFromEnv()
	require.NoError(t, err)

	client, err := NewClient(NewConfig(), creds)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	info, err := client.GetCollection(ctx, GetCollectionRequest{CollectionName: collection})
	require.NoError(t, err)
	assert.Equal(t, collection, info.CollectionName)
	assert.NotEmpty(t, info.Fields)

	cols, err := client.ListAllCollections(ctx, info.ProjectName)
	require.NoError(t, err)
	names := make([]string, 0, len(cols))
	for _, c := range cols {
		names = append(names, c.CollectionName)
	}
	assert.Contains(t, names, collection)
}

// TestIntegration_DataPlane upserts, fetches and deletes one record.
func TestIntegration_DataPlane(t *testing.T) {
	collection := os.Getenv("VIKINGDB_TEST_COLLECTION")
	if collection == "" || os.Getenv("VIKINGDB_DATA_PLANE_HOST") == "" {
		t.Skip("data plane environment not set, skipping integration test")
	}

	creds, err := signer.NewCredentialsFromEnv()
	require.NoError(t, err)

	client, err := NewClient(NewConfig(), creds)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	const id = "integration-test-record"
	err = client.Upsert(ctx, collection, []Record{{
		"id":         id,
		"image":      "tos://integration/test.jpg",
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}})
	require.NoError(t, err)

	res, err := client.Fetch(ctx, FetchRequest{CollectionName: collection, IDs: []string{id}})
	require.NoError(t, err)
	require.Len(t, res.Fetch, 1)
	assert.Equal(t, id, res.Fetch[0].ID)

	err = client.Delete(ctx, DeleteRequest{CollectionName: collection, IDs: []string{id}})
	assert.NoError(t, err)
}
