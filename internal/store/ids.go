package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID builds a collection-scoped identifier from the collection prefix, the
// current time in milliseconds and a short random suffix. Collisions are
// practically impossible within a process lifetime.
func NewID(prefix string) string {
	if prefix == "" {
		prefix = "id"
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), suffix)
}
