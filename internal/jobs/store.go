package jobs

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"speech-enrichment-service/internal/models"
)

// Job holds the state of one enrichment job. The report may be written
// twice: first a degraded version while vision is in flight, then the
// complete version once vision lands.
type Job struct {
	ID        string
	MediaURL  string
	CreatedAt time.Time
	Lifecycle *Lifecycle

	// collectMu serializes vision collection so concurrent status polls
	// hit the vision provider at most once per job.
	collectMu sync.Mutex

	mu           sync.RWMutex
	result       *models.AnalysisResult
	visionCallID string
	failure      string

	// Source modalities kept for re-enrichment once vision lands.
	transcript *models.Transcript
	prosody    []models.ProsodyFrame
}

// SetSources stores the collected transcript and prosody series so the job
// can be re-enriched when the vision call finishes.
func (j *Job) SetSources(t *models.Transcript, prosody []models.ProsodyFrame) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.transcript = t
	j.prosody = prosody
}

// Sources returns the stored transcript and prosody series.
func (j *Job) Sources() (*models.Transcript, []models.ProsodyFrame) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.transcript, j.prosody
}

// SetResult stores the current report for the job.
func (j *Job) SetResult(r *models.AnalysisResult) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = r
}

// Result returns the current report, or nil if none was produced yet.
func (j *Job) Result() *models.AnalysisResult {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.result
}

// SetVisionCall records the in-flight vision call handle.
func (j *Job) SetVisionCall(callID string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.visionCallID = callID
}

// VisionCall returns the in-flight vision call handle, empty if none.
func (j *Job) VisionCall() string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.visionCallID
}

// SetFailure records the failure reason.
func (j *Job) SetFailure(reason string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.failure = reason
}

// Failure returns the failure reason, empty if the job has not failed.
func (j *Job) Failure() string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.failure
}

// Status is the externally visible snapshot of a job.
type Status struct {
	JobID     string                 `json:"job_id"`
	Status    string                 `json:"status"`
	CreatedAt time.Time              `json:"created_at"`
	Result    *models.AnalysisResult `json:"result,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// Snapshot returns a point-in-time view of the job for API responses.
func (j *Job) Snapshot() Status {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return Status{
		JobID:     j.ID,
		Status:    j.Lifecycle.State().String(),
		CreatedAt: j.CreatedAt,
		Result:    j.result,
		Error:     j.failure,
	}
}

// Store is an in-memory job registry keyed by job ID.
// Thread-safe for concurrent access.
type Store struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewStore creates an empty job store.
func NewStore() *Store {
	return &Store{
		jobs: make(map[string]*Job),
	}
}

// Create registers a new job for the given media URL and returns it.
func (s *Store) Create(mediaURL string) *Job {
	id := uuid.NewString()
	job := &Job{
		ID:        id,
		MediaURL:  mediaURL,
		CreatedAt: time.Now().UTC(),
		Lifecycle: NewLifecycle(id),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[id] = job
	return job
}

// Get returns the job with the given ID.
func (s *Store) Get(id string) (*Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	return job, ok
}

// Len returns the number of registered jobs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}
