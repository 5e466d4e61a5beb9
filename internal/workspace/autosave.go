package workspace

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const DefaultAutoSaveDelay = 2 * time.Second

// AutoSaver debounces session saves: each change (re)arms a timer and the
// save runs once the session has been quiet for delay.
type AutoSaver struct {
	ctx     context.Context
	session *Session
	delay   time.Duration

	mu      sync.Mutex
	idle    *sync.Cond
	timer   *time.Timer
	gen     uint64 // generation of the armed timer; older timers are stale
	pending bool
	saving  int
	stopped bool

	// saveMu serializes timer saves with Flush.
	saveMu sync.Mutex
}

// NewAutoSaver attaches to session. Timer-driven saves run with ctx.
func NewAutoSaver(ctx context.Context, session *Session, delay time.Duration) *AutoSaver {
	if delay <= 0 {
		delay = DefaultAutoSaveDelay
	}

	a := &AutoSaver{
		ctx:     ctx,
		session: session,
		delay:   delay,
	}
	a.idle = sync.NewCond(&a.mu)
	session.OnChange(a.changed)
	return a
}

func (a *AutoSaver) changed() {
	if !a.session.Dirty() {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}
	if a.timer != nil {
		a.timer.Stop()
	}
	a.gen++
	gen := a.gen
	a.pending = true
	a.timer = time.AfterFunc(a.delay, func() { a.fire(gen) })
}

// fire runs the save for timer generation gen, unless a newer change,
// a Flush or Stop superseded it.
func (a *AutoSaver) fire(gen uint64) {
	a.mu.Lock()
	if gen != a.gen || !a.pending || a.stopped {
		a.mu.Unlock()
		return
	}
	a.pending = false
	a.timer = nil
	a.saving++
	a.mu.Unlock()

	_ = a.run(a.ctx)
}

// Pending reports whether a save is scheduled.
func (a *AutoSaver) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending
}

// Flush runs a scheduled save now. With nothing scheduled it waits for any
// in-flight save and returns nil.
func (a *AutoSaver) Flush(ctx context.Context) error {
	a.mu.Lock()
	if !a.pending {
		for a.saving > 0 {
			a.idle.Wait()
		}
		a.mu.Unlock()
		return nil
	}
	a.cancelTimer()
	a.pending = false
	a.saving++
	a.mu.Unlock()

	return a.run(ctx)
}

// Stop cancels any scheduled save and ignores later changes.
func (a *AutoSaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopped = true
	a.pending = false
	a.cancelTimer()
}

// cancelTimer must be called with mu held.
func (a *AutoSaver) cancelTimer() {
	a.gen++
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

// run saves the session; the caller has already counted it in saving.
func (a *AutoSaver) run(ctx context.Context) error {
	defer func() {
		a.mu.Lock()
		a.saving--
		a.idle.Broadcast()
		a.mu.Unlock()
	}()

	a.saveMu.Lock()
	defer a.saveMu.Unlock()

	if err := a.session.Save(ctx); err != nil {
		log.Error().Err(err).Msg(msgAutoSaveFailed)
		return err
	}
	return nil
}
