package dialog

import "github.com/google/uuid"

// generateID creates a session identifier used to correlate log lines.
func generateID() string {
	return uuid.NewString()
}
