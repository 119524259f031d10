// Package logger provides structured logging for the VikingDB client
// modules, built on Uber's Zap.
//
// It offers leveled, structured logging with optional OpenTelemetry
// integration: the *WithContext methods extract the active trace and
// span IDs from the context and attach them to the entry, correlating
// logs with distributed traces.
//
// Direct usage:
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:       logger.Info,
//		ServiceName: "vikingdb-transfer",
//	})
//	log.Info("run started", nil, map[string]interface{}{
//		"bucket": "images",
//	})
//
// With Fx:
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Provide(logger.NewConfig),
//		// other modules...
//	)
//
// Configuration comes from the environment:
//
//	ZAP_LOGGER_LEVEL       log level (debug, info, warning, error)
//	LOGGER_SERVICE_NAME    service field added to every entry
//	LOGGER_ENABLE_TRACING  attach trace_id/span_id from context
//
// All methods are safe for concurrent use.
package logger
