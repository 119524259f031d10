package transfer

import (
	"go.uber.org/fx"

	"github.com/skylarkhq/vikingdb-go/v1/observability"
	"github.com/skylarkhq/vikingdb-go/v1/tracer"
)

// FXModule wires the transfer pipeline into Fx. It expects an Upserter
// in the graph; vikingdb.FXModule provides one via *vikingdb.Client.
//
// It provides:
//   - *Config        (NewConfig, from environment)
//   - ObjectLister   (NewMinioLister)
//   - *Transferrer   (NewTransferrerWithDI)
var FXModule = fx.Module(
	"transfer",

	fx.Provide(
		NewConfig,
		func(cfg *Config) (ObjectLister, error) { return NewMinioLister(cfg) },
		NewTransferrerWithDI,
	),
)

// TransferrerParams groups the dependencies needed to create a
// Transferrer.
type TransferrerParams struct {
	fx.In

	Config   *Config
	Lister   ObjectLister
	Upserter Upserter
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
	Tracer   *tracer.Tracer         `optional:"true"`
}

// NewTransferrerWithDI creates a Transferrer using dependency injection.
func NewTransferrerWithDI(params TransferrerParams) (*Transferrer, error) {
	t, err := NewTransferrer(params.Config, params.Lister, params.Upserter)
	if err != nil {
		return nil, err
	}
	if params.Logger != nil {
		t.WithLogger(params.Logger)
	}
	if params.Observer != nil {
		t.WithObserver(params.Observer)
	}
	if params.Tracer != nil {
		t.WithTracer(params.Tracer)
	}
	return t, nil
}
