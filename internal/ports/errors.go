package ports

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

// StatusError signale une réponse amont hors 2xx.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("upstream status %s", e.Status)
	}
	return fmt.Sprintf("upstream status %d", e.StatusCode)
}
