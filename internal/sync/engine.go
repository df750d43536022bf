package sync

import (
	"context"
	"sort"
	"sync"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/errors"
	"taskboard/internal/logging"
	"taskboard/internal/validation"
)

// Repository is the slice of the task API the engine consumes.
type Repository interface {
	List(ctx context.Context) ([]domain.Task, error)
	Create(ctx context.Context, draft domain.Draft) (*domain.Task, error)
	Update(ctx context.Context, id int64, draft domain.Draft) (*domain.Task, error)
	Delete(ctx context.Context, id int64) error
}

// CredentialSource answers the synchronous "is a credential present" check.
// The session store implements this.
type CredentialSource interface {
	IsAuthenticated() bool
}

// Engine owns the in-memory task collection and is its only mutator. It
// applies optimistic additions from user actions, merges authoritative
// server responses by ID, and resynchronizes the whole collection whenever
// the notification channel signals a change.
//
// Merge policy: an incoming authoritative task always wins in full; there
// is no field-level merge. Unordered completions of concurrent mutations on
// the same ID resolve last-response-wins, an accepted race for a
// single-user session.
type Engine struct {
	repo          Repository
	creds         CredentialSource
	taskValidator *validation.TaskValidator

	refreshDelay   time.Duration
	refreshTimeout time.Duration
	onAsyncError   func(err error)

	mu           sync.Mutex
	tasks        map[int64]domain.Task
	refreshTimer *time.Timer
	closed       bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithPostCreateRefreshDelay overrides the delay before the best-effort
// refresh that follows a successful create.
func WithPostCreateRefreshDelay(d time.Duration) Option {
	return func(e *Engine) {
		e.refreshDelay = d
	}
}

// WithRefreshTimeout overrides the timeout applied to background refreshes
// triggered by timers and change signals.
func WithRefreshTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.refreshTimeout = d
	}
}

// WithAsyncErrorHandler registers a callback for failures of background
// refreshes, which have no caller to return an error to.
func WithAsyncErrorHandler(fn func(err error)) Option {
	return func(e *Engine) {
		e.onAsyncError = fn
	}
}

// New creates a reconciliation engine over the given repository and
// credential source.
func New(repo Repository, creds CredentialSource, opts ...Option) *Engine {
	e := &Engine{
		repo:           repo,
		creds:          creds,
		taskValidator:  validation.NewTaskValidator(),
		refreshDelay:   300 * time.Millisecond,
		refreshTimeout: 10 * time.Second,
		tasks:          make(map[int64]domain.Task),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Refresh fetches the authoritative list and replaces the collection with
// it. On a 401 the repository's unauthorized hook has already invalidated
// the credential; the collection is left unchanged. A not-found ("no tasks
// yet") empties the collection and is returned as a distinct, checkable
// condition. Any other failure leaves the prior collection intact:
// stale data beats no data.
func (e *Engine) Refresh(ctx context.Context) error {
	tasks, err := e.repo.List(ctx)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			e.replaceAll(nil)
		}
		return err
	}

	e.replaceAll(tasks)
	return nil
}

// CreateTask validates locally, requires an active credential, submits the
// draft and appends the server's authoritative task to the collection. The
// append is additive: replacing the whole collection here could discard
// concurrent in-flight creations. A best-effort delayed refresh follows to
// absorb server-side effects the immediate response does not reflect.
func (e *Engine) CreateTask(ctx context.Context, draft domain.Draft) (*domain.Task, error) {
	if err := e.taskValidator.ValidateTitle(draft.Title); err != nil {
		return nil, errors.NewValidationError("invalid task", err)
	}
	if !e.creds.IsAuthenticated() {
		return nil, errors.NewAuthenticationError("You must be logged in to create tasks", nil)
	}

	task, err := e.repo.Create(ctx, draft)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.tasks[task.ID] = *task
	e.scheduleRefreshLocked()
	e.mu.Unlock()

	return task, nil
}

// UpdateTask submits a full update for the draft's ID and replaces the
// matching task in the collection. No other entry is touched.
func (e *Engine) UpdateTask(ctx context.Context, draft domain.Draft) (*domain.Task, error) {
	if err := e.taskValidator.ValidateTaskID(draft.ID); err != nil {
		return nil, errors.NewValidationError("task ID is required for updating", err)
	}

	task, err := e.repo.Update(ctx, draft.ID, draft)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.tasks[task.ID] = *task
	e.mu.Unlock()

	return task, nil
}

// UpdateTaskStatus moves a task to another board column. An unknown ID is
// a logged no-op, not an error: a concurrent delete may have raced the
// move, and the next refresh settles it either way.
func (e *Engine) UpdateTaskStatus(ctx context.Context, id int64, status domain.Status) (*domain.Task, error) {
	e.mu.Lock()
	existing, ok := e.tasks[id]
	e.mu.Unlock()
	if !ok {
		logging.Debugf("sync: status change for unknown task %d ignored\n", id)
		return nil, nil
	}

	draft := domain.DraftFromTask(existing)
	draft.Status = status
	return e.UpdateTask(ctx, draft)
}

// DeleteTask removes a task, requiring an active credential. The local
// entry goes away only after the server confirms: the visible list never
// drops a task the server still holds.
func (e *Engine) DeleteTask(ctx context.Context, id int64) error {
	if !e.creds.IsAuthenticated() {
		return errors.NewAuthenticationError("You must be logged in to delete tasks", nil)
	}

	if err := e.repo.Delete(ctx, id); err != nil {
		return err
	}

	e.mu.Lock()
	delete(e.tasks, id)
	e.mu.Unlock()

	return nil
}

// HandleChangeSignal is the notification channel's callback target. The
// payload carries no usable content, so the response is always a full
// refresh.
func (e *Engine) HandleChangeSignal() {
	ctx, cancel := context.WithTimeout(context.Background(), e.refreshTimeout)
	defer cancel()

	if err := e.Refresh(ctx); err != nil && !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		e.reportAsyncError(err)
	}
}

// Tasks returns a snapshot of the collection ordered by ID.
func (e *Engine) Tasks() []domain.Task {
	e.mu.Lock()
	defer e.mu.Unlock()

	tasks := make([]domain.Task, 0, len(e.tasks))
	for _, task := range e.tasks {
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks
}

// Size returns the number of tasks currently held.
func (e *Engine) Size() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.tasks)
}

// Close cancels all pending timers. The engine must not be used afterwards.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.closed = true
	if e.refreshTimer != nil {
		e.refreshTimer.Stop()
		e.refreshTimer = nil
	}
}

// replaceAll swaps the whole collection for the authoritative list.
func (e *Engine) replaceAll(tasks []domain.Task) {
	next := make(map[int64]domain.Task, len(tasks))
	for _, task := range tasks {
		next[task.ID] = task
	}

	e.mu.Lock()
	e.tasks = next
	e.mu.Unlock()
}

// scheduleRefreshLocked arms the post-create refresh timer, replacing any
// previously armed one so at most a single delayed refresh is pending.
// Caller holds e.mu.
func (e *Engine) scheduleRefreshLocked() {
	if e.closed {
		return
	}
	if e.refreshTimer != nil {
		e.refreshTimer.Stop()
	}
	e.refreshTimer = time.AfterFunc(e.refreshDelay, e.refreshIfSizeDiffers)
}

// refreshIfSizeDiffers applies a fetched list only when its size differs
// from the in-memory collection. A same-size result is treated as a no-op
// to avoid clobbering the collection for nothing; real divergence at equal
// size is settled by the next signal-driven refresh.
func (e *Engine) refreshIfSizeDiffers() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.refreshTimer = nil
	currentSize := len(e.tasks)
	e.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), e.refreshTimeout)
	defer cancel()

	tasks, err := e.repo.List(ctx)
	if err != nil {
		// Best-effort: the optimistic append already made the create visible.
		logging.Debugf("sync: post-create refresh failed: %v\n", err)
		return
	}

	if len(tasks) != currentSize {
		logging.Debugf("sync: post-create refresh applied (%d -> %d tasks)\n", currentSize, len(tasks))
		e.replaceAll(tasks)
	}
}

func (e *Engine) reportAsyncError(err error) {
	if e.onAsyncError != nil {
		e.onAsyncError(err)
		return
	}
	if errors.ShouldLogError(err) {
		logging.Debugf("sync: background refresh failed: %v\n", err)
	}
}
