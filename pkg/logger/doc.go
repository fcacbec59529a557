// Package logger provides a slog.Logger factory with environment presets,
// static attributes, and context-driven attribute injection.
//
//	log := logger.New(
//	    logger.WithDevelopment("librarysystem"),
//	    logger.WithAttr(logger.Component("controller")),
//	)
//	logger.SetAsDefault(log)
package logger
