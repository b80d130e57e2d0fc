// Package logging builds the slog loggers of the API server and the CLI.
//
// The server logs JSON to stdout (NewJSONLogger); the gibbs CLI logs text to
// stderr (NewTextLogger) so command output on stdout stays machine readable.
// LOG_LEVEL is parsed with ParseLevel; unknown values fall back to info.
//
// Use cases attach the request ID of the current request:
//
//	logger := logging.WithRequestID(ctx, s.Logger)
//	logger.Warn("fit rejected", slog.Any("error", err))
//
// Services built without a logger fall back to FromContext, which returns the
// logger stored by WithLogger or slog.Default.
package logging
