package vikingdb

import (
	"go.uber.org/fx"

	"github.com/skylarkhq/vikingdb-go/v1/observability"
	"github.com/skylarkhq/vikingdb-go/v1/signer"
)

// FXModule wires the VikingDB client into Fx.
//
// It provides:
//   - *Config               (NewConfig, from environment)
//   - signer.Credentials    (signer.NewCredentialsFromEnv)
//   - *Client               (NewClientWithDI)
//
// Usage:
//
//	app := fx.New(
//	    vikingdb.FXModule,
//	    logger.FXModule,  // optional: structured logging
//	    metrics.FXModule, // optional: operation metrics
//	)
var FXModule = fx.Module(
	"vikingdb",

	fx.Provide(
		NewConfig,                    // -> *Config
		signer.NewCredentialsFromEnv, // -> signer.Credentials
		NewClientWithDI,              // -> *Client
	),
)

// ClientParams groups the dependencies needed to create a Client.
type ClientParams struct {
	fx.In

	Config      *Config
	Credentials signer.Credentials
	Logger      Logger                 `optional:"true"`
	Observer    observability.Observer `optional:"true"`
}

// NewClientWithDI creates a Client using dependency injection. Logger
// and Observer are attached when present in the graph.
func NewClientWithDI(params ClientParams) (*Client, error) {
	client, err := NewClient(params.Config, params.Credentials)
	if err != nil {
		return nil, err
	}
	if params.Logger != nil {
		client.WithLogger(params.Logger)
	}
	if params.Observer != nil {
		client.WithObserver(params.Observer)
	}
	return client, nil
}
