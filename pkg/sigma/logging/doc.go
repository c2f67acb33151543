// Package logging provides a minimal logging facade for the sigma packages.
//
// Logger wraps the subset of log/slog the protocols need. Applications can
// supply their own implementation for testing or redaction policies:
//
//	logger := logging.New(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
//	stacker, err := stack.New(schnorr.New(), 8, stack.WithLogger(logger))
//
// # Redaction
//
// Protocol code never logs witnesses, trapdoors, randomness or which clause is
// real. Where such a field would be useful for orientation, it is replaced by
// Redacted:
//
//	logger.Debug(ctx, "stacked first message", "clauses", 8, logging.Redacted("binding_index"))
//	// binding_index="[redacted]"
//
// Discard returns a Logger that drops everything; it is the default for every
// protocol constructor.
package logging
