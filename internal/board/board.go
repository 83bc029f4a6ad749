package board

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vilaca/bounty-board/internal/domain"
	"github.com/vilaca/bounty-board/internal/source"
)

// State is the load state of the board.
type State string

const (
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateFailed  State = "failed"
)

var (
	// ErrLoadInProgress is returned when a load is requested while another is running.
	ErrLoadInProgress = errors.New("a load is already in progress")
	// ErrClosed is returned when a load is requested after Close.
	ErrClosed = errors.New("board is closed")
)

// Board owns the issue list and its derived label sets.
// All writes go through its methods; readers take immutable snapshots.
// At most one fetch runs at a time.
type Board struct {
	source source.Source
	logger *zap.Logger
	now    func() time.Time

	mu         sync.RWMutex
	state      State
	issues     []domain.Issue
	labels     []string
	categories []string
	err        error
	updatedAt  time.Time
	loading    bool
	closed     bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a board reading from src. Nothing is fetched until Start or Load.
func New(src source.Source, logger *zap.Logger) *Board {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Board{
		source:     src,
		logger:     logger,
		now:        time.Now,
		state:      StateLoading,
		labels:     []string{All},
		categories: []string{All},
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start launches a background load unless one is already running.
// It returns false when no load was started.
func (b *Board) Start() bool {
	b.mu.Lock()
	if b.loading || b.closed {
		b.mu.Unlock()
		return false
	}
	b.beginLocked()
	b.wg.Add(1)
	b.mu.Unlock()

	go func() {
		defer b.wg.Done()
		_ = b.load(b.ctx)
	}()

	return true
}

// Load fetches synchronously and stores the result.
// The fetch is canceled when ctx is done or the board is closed.
func (b *Board) Load(ctx context.Context) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	if b.loading {
		b.mu.Unlock()
		return ErrLoadInProgress
	}
	b.beginLocked()
	b.wg.Add(1)
	b.mu.Unlock()
	defer b.wg.Done()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(b.ctx, cancel)
	defer stop()

	return b.load(ctx)
}

// Close cancels a running load, background or synchronous, and waits for it to finish.
func (b *Board) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()

	b.cancel()
	b.wg.Wait()
}

// beginLocked marks a load as running. Loaded records stay visible during a reload.
func (b *Board) beginLocked() {
	b.loading = true
	if b.state != StateLoaded {
		b.state = StateLoading
	}
}

func (b *Board) load(ctx context.Context) error {
	started := b.now()
	issues, err := b.source.Fetch(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.loading = false

	if err != nil {
		b.state = StateFailed
		b.err = err
		b.issues = nil
		b.labels = []string{All}
		b.categories = []string{All}
		b.logger.Error("failed to load issues",
			zap.String("source", b.source.Name()),
			zap.Duration("elapsed", b.now().Sub(started)),
			zap.Error(err))
		return err
	}

	b.setRecordsLocked(issues)
	b.logger.Info("issues loaded",
		zap.String("source", b.source.Name()),
		zap.Int("issues", len(b.issues)),
		zap.Int("labels", len(b.labels)-1),
		zap.Duration("elapsed", b.now().Sub(started)))
	return nil
}

// SetRecords replaces the issue list and recomputes the derived label sets.
func (b *Board) SetRecords(issues []domain.Issue) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setRecordsLocked(issues)
}

func (b *Board) setRecordsLocked(issues []domain.Issue) {
	b.issues = append([]domain.Issue(nil), issues...)
	b.labels = DistinctLabels(b.issues)
	b.categories = DistinctCategories(b.issues)
	b.state = StateLoaded
	b.err = nil
	b.updatedAt = b.now()
}

// Snapshot returns the current board contents. The returned slices must not be modified.
func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return Snapshot{
		State:      b.state,
		Loading:    b.loading,
		Issues:     b.issues,
		Labels:     b.labels,
		Categories: b.categories,
		Err:        b.err,
		UpdatedAt:  b.updatedAt,
		Source:     b.source.Name(),
	}
}

// Snapshot is a read-only copy of the board at one point in time.
type Snapshot struct {
	State      State
	Loading    bool
	Issues     []domain.Issue
	Labels     []string
	Categories []string
	Err        error
	UpdatedAt  time.Time
	Source     string
}

// HasCategories reports whether any issue carries a category.
func (s Snapshot) HasCategories() bool {
	return len(s.Categories) > 1
}

// View applies a filter to the snapshot.
func (s Snapshot) View(f Filter) View {
	f = f.Normalize()
	return View{
		Snapshot: s,
		Filter:   f,
		Visible:  Apply(s.Issues, f),
	}
}

// View is a snapshot together with the active filter and the issues that pass it.
type View struct {
	Snapshot
	Filter  Filter
	Visible []domain.Issue
}
