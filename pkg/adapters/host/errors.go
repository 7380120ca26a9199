package host

import (
	"fmt"
	"strings"
)

// HostError is a non-success host response. Body carries the response text
// so the UI can surface the host's own message.
type HostError struct {
	Status int
	Body   string
}

func (e *HostError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("host responded with status %d", e.Status)
	}
	return fmt.Sprintf("host responded with status %d: %s", e.Status, body)
}
