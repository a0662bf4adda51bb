package proof

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tasksure/client/domain"
)

// State is the workflow's position in its lifecycle.
type State string

const (
	// StateIdle has no selected task.
	StateIdle State = "idle"
	// StateComposing holds a selected task and a mutable draft.
	StateComposing State = "composing"
	// StateSubmitting has exactly one request in flight.
	StateSubmitting State = "submitting"
	// StateSucceeded is the terminal outcome of a submission; the
	// verdict (possibly still "pending") has been surfaced.
	StateSucceeded State = "succeeded"
)

// Submitter is the slice of the server boundary the workflow depends on.
type Submitter interface {
	SubmitProof(ctx context.Context, sess *domain.Session, submission domain.ProofSubmission) (*domain.ProofVerdict, error)
}

// Resyncer lets the workflow ask the task store to refresh after a
// successful submission.
type Resyncer interface {
	LoadAll(ctx context.Context, sess *domain.Session) error
}

// ErrSubmissionInFlight rejects a second submit while one is pending.
var ErrSubmissionInFlight = domain.NewError(domain.ErrCodeInvalid, "a submission is already in flight")

// Workflow coordinates a single in-flight proof submission for a
// selected task. Submissions are never queued: while one is in flight
// any further submit attempt is rejected. The submission lock is
// released on every path, success or failure, so the workflow can never
// wedge in the submitting state.
type Workflow struct {
	api    Submitter
	store  Resyncer
	logger *zap.Logger

	mu          sync.Mutex
	state       State
	task        *domain.Task
	draft       domain.ProofSubmission
	lastVerdict *domain.ProofVerdict
}

// New builds a workflow in the idle state.
func New(api Submitter, store Resyncer, logger *zap.Logger) *Workflow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workflow{
		api:    api,
		store:  store,
		logger: logger,
		state:  StateIdle,
	}
}

// State returns the current lifecycle position.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Task returns the selected task, or nil outside composing.
func (w *Workflow) Task() *domain.Task {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.task
}

// Draft returns a copy of the current evidence draft.
func (w *Workflow) Draft() domain.ProofSubmission {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// LastVerdict returns the verdict of the most recent successful
// submission, if any.
func (w *Workflow) LastVerdict() *domain.ProofVerdict {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastVerdict
}

// Open selects a task and starts a fresh draft. It is rejected while a
// submission is in flight.
func (w *Workflow) Open(task domain.Task) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StateSubmitting {
		return ErrSubmissionInFlight
	}
	w.task = &task
	w.draft = domain.ProofSubmission{TaskID: task.ID}
	w.state = StateComposing
	return nil
}

// SetText updates the free-text explanation of the draft.
func (w *Workflow) SetText(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateComposing {
		return domain.NewError(domain.ErrCodeInvalid, "no task selected")
	}
	w.draft.Text = text
	return nil
}

// Attach stages a binary evidence file on the draft.
func (w *Workflow) Attach(att *domain.ProofAttachment) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateComposing {
		return domain.NewError(domain.ErrCodeInvalid, "no task selected")
	}
	w.draft.Attachment = att
	return nil
}

// Cancel discards the draft and deselects the task. It is allowed at
// any time before a submission enters flight.
func (w *Workflow) Cancel() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StateSubmitting {
		return ErrSubmissionInFlight
	}
	w.reset()
	return nil
}

// Submit validates the draft and issues exactly one upload request.
// An empty draft is rejected synchronously without touching the
// network and without changing state. On success the verdict is
// surfaced, the draft and selection are cleared and the task store is
// asked to resynchronize once. On failure the draft is preserved and
// the workflow returns to composing so the user may retry or cancel.
func (w *Workflow) Submit(ctx context.Context, sess *domain.Session) (*domain.ProofVerdict, error) {
	w.mu.Lock()
	if w.state == StateSubmitting {
		w.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	if w.state != StateComposing {
		w.mu.Unlock()
		return nil, domain.NewError(domain.ErrCodeInvalid, "no task selected")
	}
	if err := w.draft.Validate(); err != nil {
		w.mu.Unlock()
		return nil, err
	}

	attemptID := uuid.NewString()
	submission := w.draft
	w.state = StateSubmitting
	w.mu.Unlock()

	log := w.logger.With(
		zap.String("attempt_id", attemptID),
		zap.String("task_id", submission.TaskID))
	log.Debug("submitting proof")

	verdict, err := w.api.SubmitProof(ctx, sess, submission)

	w.mu.Lock()
	if err != nil {
		// Draft preserved for retry; the lock is released by
		// returning to composing.
		w.state = StateComposing
		w.mu.Unlock()
		log.Warn("proof submission failed", zap.Error(err))
		return nil, err
	}

	w.lastVerdict = verdict
	w.reset()
	w.state = StateSucceeded
	w.mu.Unlock()

	log.Info("proof verdict received", zap.String("status", string(verdict.Status)))

	if w.store != nil {
		if err := w.store.LoadAll(ctx, sess); err != nil {
			log.Warn("resync after proof failed", zap.Error(err))
		}
	}
	return verdict, nil
}

// reset clears the selection and draft. Callers hold w.mu.
func (w *Workflow) reset() {
	w.task = nil
	w.draft = domain.ProofSubmission{}
	w.state = StateIdle
}
