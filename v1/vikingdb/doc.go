// Package vikingdb provides a typed Go client for the VikingDB vector
// database HTTP APIs.
//
// The service exposes two planes sharing one credential and region:
//
//   - Control plane: collection, index and background-task management.
//     Every call is a POST to "/" on the control-plane host with the
//     operation carried as Action and Version query parameters.
//   - Data plane: record-level operations (upsert, fetch, update,
//     delete, search variants, aggregation). Every call is a POST to an
//     operation-specific path on the data-plane host, with no Action or
//     Version parameters.
//
// All requests are authenticated with the SigV4-style signature from
// [github.com/skylarkhq/vikingdb-go/v1/signer]. The client serializes
// request bodies compactly, signs the exact payload bytes, and sets the
// request's raw query to the exact normalized string that was signed, so
// the hash committed to in the signature always matches the wire bytes.
//
// # Basic Usage
//
//	creds, err := signer.NewCredentialsFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := vikingdb.NewClient(vikingdb.NewConfig(), creds)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	info, err := client.GetCollection(ctx, vikingdb.GetCollectionRequest{
//	    ProjectName:    "default",
//	    CollectionName: "ImageCollection",
//	})
//
// # Destructive Operations
//
// DeleteCollection, DeleteIndex, DeleteTask and data-plane DeleteAll
// take an explicit Confirmed flag. Unconfirmed calls fail with
// [ErrNotConfirmed] before any network I/O. Interactive confirmation
// belongs to the application, not this client.
//
// # Errors
//
// Remote rejections (non-2xx status, or an error code in the response
// envelope) surface as [*APIError] carrying the HTTP status, the
// service's code and message, and the raw response body for diagnosis.
// Transport failures are wrapped and propagated unmodified; the client
// never retries.
//
// # Concurrency
//
// A Client is safe for concurrent use. Each request computes its own
// timestamp and signature; there is no shared signing state. Callers own
// any concurrency cap and retry policy (see the transfer package for a
// bounded bulk-upsert orchestration).
//
// # FX Module Integration
//
//	app := fx.New(
//	    vikingdb.FXModule,
//	    // other modules...
//	)
package vikingdb
