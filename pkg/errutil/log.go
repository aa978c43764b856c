// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

package errutil

import (
	"log/slog"

	"github.com/samber/oops"
)

// LogError logs an error with structured context if it's an oops error.
// For oops errors, it extracts and logs the message, domain, hint, and context.
// For standard errors, it logs the error string.
func LogError(logger *slog.Logger, msg string, err error) {
	if oopsErr, ok := oops.AsOops(err); ok {
		attrs := []any{
			"error", oopsErr.Error(),
		}
		if domain := oopsErr.Domain(); domain != "" {
			attrs = append(attrs, "domain", domain)
		}
		if hint := oopsErr.Hint(); hint != "" {
			attrs = append(attrs, "hint", hint)
		}
		if ctx := oopsErr.Context(); len(ctx) > 0 {
			attrs = append(attrs, "context", ctx)
		}
		logger.Error(msg, attrs...)
	} else {
		logger.Error(msg, "error", err)
	}
}
