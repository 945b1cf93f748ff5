// Package memory provides an in-process implementation of every repository.
// A single lock guards all tables, so each call is atomic with respect to every
// other call: constrained inserts, cascading deletes and snapshot reads all hold.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/fastygo/jobboard/domain"
	"github.com/fastygo/jobboard/repository"
)

type pairKey struct {
	jobID    string
	seekerID string
}

// Store holds all tables of the in-memory backend.
type Store struct {
	mu    sync.RWMutex
	clock clockwork.Clock

	users        map[string]domain.User
	emails       map[string]string
	jobs         map[string]domain.Job
	applications map[string]domain.Application
	pairs        map[pairKey]string
	activities   []domain.Activity
	activityIDs  map[string]struct{}
	sessions     map[string]domain.Session
}

// New creates an empty store. A nil clock uses wall time.
func New(clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{
		clock:        clock,
		users:        make(map[string]domain.User),
		emails:       make(map[string]string),
		jobs:         make(map[string]domain.Job),
		applications: make(map[string]domain.Application),
		pairs:        make(map[pairKey]string),
		activityIDs:  make(map[string]struct{}),
		sessions:     make(map[string]domain.Session),
	}
}

func (s *Store) Users() repository.UserRepository { return &userRepository{s} }

func (s *Store) Jobs() repository.JobRepository { return &jobRepository{s} }

func (s *Store) Applications() repository.ApplicationRepository {
	return &applicationRepository{s}
}

func (s *Store) Dashboard() repository.DashboardRepository { return &dashboardRepository{s} }

func (s *Store) Activity() repository.ActivityRepository { return &activityRepository{s} }

func (s *Store) Sessions() repository.SessionRepository { return &sessionRepository{s} }

func (s *Store) now() time.Time {
	return s.clock.Now()
}

func newID() string {
	return uuid.NewString()
}

// enrichJob fills the joined fields. Caller holds the lock.
func (s *Store) enrichJob(job domain.Job) domain.Job {
	if employer, ok := s.users[job.EmployerID]; ok {
		job.EmployerName = employer.FullName
	}
	count := 0
	for _, app := range s.applications {
		if app.JobID == job.ID {
			count++
		}
	}
	job.ApplicationCount = &count
	return job
}

// enrichApplication fills the joined fields. Caller holds the lock.
func (s *Store) enrichApplication(app domain.Application) domain.Application {
	if job, ok := s.jobs[app.JobID]; ok {
		app.JobTitle = job.Title
		app.EmployerID = job.EmployerID
	}
	if seeker, ok := s.users[app.SeekerID]; ok {
		app.SeekerName = seeker.FullName
		app.SeekerEmail = seeker.Email
	}
	return app
}

func sortJobs(jobs []domain.Job) {
	sort.SliceStable(jobs, func(i, j int) bool {
		if jobs[i].CreatedAt.Equal(jobs[j].CreatedAt) {
			return jobs[i].ID < jobs[j].ID
		}
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
}

func sortApplications(apps []domain.Application) {
	sort.SliceStable(apps, func(i, j int) bool {
		if apps[i].AppliedAt.Equal(apps[j].AppliedAt) {
			return apps[i].ID < apps[j].ID
		}
		return apps[i].AppliedAt.After(apps[j].AppliedAt)
	})
}
