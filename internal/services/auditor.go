// filepath: internal/services/auditor.go
package services

import "context"

// Auditor records one line per conform decision. Implemented by
// internal/audit.LoggerAuditor.
type Auditor interface {
	Log(ctx context.Context, action string, actor string, resource string, details map[string]interface{})
}
