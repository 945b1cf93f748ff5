package memory

import (
	"context"
	"sort"

	"github.com/fastygo/jobboard/domain"
)

type activityRepository struct {
	s *Store
}

func (r *activityRepository) Append(_ context.Context, activity domain.Activity) error {
	if activity.Kind == "" || activity.EmployerID == "" {
		return domain.ErrInvalidPayload
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if activity.ID == "" {
		activity.ID = newID()
	}
	if _, seen := r.s.activityIDs[activity.ID]; seen {
		return nil
	}
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = r.s.now()
	}
	r.s.activityIDs[activity.ID] = struct{}{}
	r.s.activities = append(r.s.activities, activity)
	return nil
}

func (r *activityRepository) ListByEmployer(_ context.Context, employerID string, limit int) ([]domain.Activity, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Activity{}
	for _, activity := range r.s.activities {
		if activity.EmployerID == employerID {
			out = append(out, activity)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
