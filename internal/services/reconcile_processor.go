package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Reconciler brings a downstream copy back in line with the store.
type Reconciler interface {
	Reconcile(ctx context.Context) error
}

// ReconcileProcessorConfig holds configuration for the reconcile processor
type ReconcileProcessorConfig struct {
	// Interval between full reconciles (default: 5m)
	Interval time.Duration

	// RunOnStart triggers a reconcile immediately when started (default: true)
	RunOnStart bool
}

// DefaultReconcileProcessorConfig returns sensible defaults
func DefaultReconcileProcessorConfig() ReconcileProcessorConfig {
	return ReconcileProcessorConfig{
		Interval:   5 * time.Minute,
		RunOnStart: true,
	}
}

// ReconcileProcessor runs a Reconciler on a fixed interval. It is the
// backstop for change events lost between the API and the mirror worker.
type ReconcileProcessor struct {
	target Reconciler
	config ReconcileProcessorConfig

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	lastRun time.Time
	lastErr error
}

func NewReconcileProcessor(target Reconciler, config ReconcileProcessorConfig) *ReconcileProcessor {
	if config.Interval <= 0 {
		config.Interval = DefaultReconcileProcessorConfig().Interval
	}
	return &ReconcileProcessor{
		target: target,
		config: config,
	}
}

// Start begins the processing loop. Returns an error if already running.
func (p *ReconcileProcessor) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("reconcile processor is already running")
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	p.mu.Unlock()

	go p.runLoop(ctx)

	slog.InfoContext(ctx, "Reconcile processor started", "interval", p.config.Interval)
	return nil
}

// Stop gracefully stops the processor and waits for the current run.
func (p *ReconcileProcessor) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	stopCh, doneCh := p.stopCh, p.doneCh
	p.mu.Unlock()

	close(stopCh)

	select {
	case <-doneCh:
		slog.InfoContext(ctx, "Reconcile processor stopped gracefully")
	case <-ctx.Done():
		slog.WarnContext(ctx, "Reconcile processor stop timed out")
		return ctx.Err()
	}

	p.mu.Lock()
	p.running = false
	p.mu.Unlock()
	return nil
}

func (p *ReconcileProcessor) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// LastRun reports when the last reconcile finished and its outcome.
func (p *ReconcileProcessor) LastRun() (time.Time, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastRun, p.lastErr
}

func (p *ReconcileProcessor) runLoop(ctx context.Context) {
	defer close(p.doneCh)

	ticker := time.NewTicker(p.config.Interval)
	defer ticker.Stop()

	if p.config.RunOnStart {
		p.runOnce(ctx)
	}

	for {
		select {
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.runOnce(ctx)
		}
	}
}

func (p *ReconcileProcessor) runOnce(ctx context.Context) {
	start := time.Now()
	err := p.target.Reconcile(ctx)

	p.mu.Lock()
	p.lastRun = time.Now()
	p.lastErr = err
	p.mu.Unlock()

	if err != nil {
		slog.ErrorContext(ctx, "Reconcile failed", "error", err, "duration", time.Since(start))
		return
	}
	slog.DebugContext(ctx, "Reconcile completed", "duration", time.Since(start))
}
