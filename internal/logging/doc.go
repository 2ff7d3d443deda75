// Package logging provides structured logging for the portfolio service.
//
// The package wraps a zap logger with package-level helpers so callers do not
// have to thread a logger through every constructor:
//
//	logging.Info("Session opened",
//	    zap.String("session", id),
//	    zap.String("visitor", logging.Anonymize(c.ClientIP())),
//	)
//
// Until Initialize is called every helper writes to a nop logger, which keeps
// tests and one-shot CLI commands quiet.
//
// # Privacy
//
// Visitor identifiers (IP addresses, email addresses) are never logged raw.
// Anonymize hashes them with a per-process salt so the same visitor can be
// correlated within one run but not across restarts.
package logging
