// Package logger provides structured logging for the storefront toolkit
// using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("cart")
//	log.Info("item added", logger.Fields(logger.FieldProductID, "p-1"))
package logger
