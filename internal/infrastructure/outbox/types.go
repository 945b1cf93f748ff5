package outbox

import (
	"time"

	"github.com/google/uuid"

	"github.com/fastygo/jobboard/domain"
)

// Item is an activity entry waiting to be written to primary storage.
type Item struct {
	ID         string          `json:"id"`
	Activity   domain.Activity `json:"activity"`
	Retries    int             `json:"retries"`
	EnqueuedAt time.Time       `json:"enqueued_at"`

	bucketKey []byte
}

func (i *Item) normalize(now time.Time) {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.EnqueuedAt.IsZero() {
		i.EnqueuedAt = now
	}
}
