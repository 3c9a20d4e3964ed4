package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"PaisaPulse/internal/domain/models"
	domrepo "PaisaPulse/internal/domain/repository"
	"PaisaPulse/internal/service/ratelimit"
)

// Proc is the minimal processor interface the pipeline needs.
type Proc interface {
	Process(ctx context.Context, m *models.InboundMessage) error
}

// IngestPipeline sits between the inbound sources and the ingestor.
// It validates, throttles per user, and buffers when downstream is unavailable.
type IngestPipeline struct {
	proc    Proc
	metrics domrepo.Metrics
	maxRPS  int
	bufSize int
	bufCh   chan *models.InboundMessage
	stopCh  chan struct{}
	started bool
	mu      sync.Mutex
	limiter *ratelimit.Limiter // per-user token bucket
	// metrics
	bufDepthGauge func(int)
	throttleWarn  func(string)
}

type PipelineOption func(*IngestPipeline)

// WithMaxUserRPS sets the max messages per second per user.
func WithMaxUserRPS(n int) PipelineOption {
	return func(p *IngestPipeline) {
		if n > 0 {
			p.maxRPS = n
		}
	}
}

// WithBufferSize sets the temporary buffer size when downstream is unavailable.
func WithBufferSize(n int) PipelineOption {
	return func(p *IngestPipeline) {
		if n > 0 {
			p.bufSize = n
		}
	}
}

// NewIngestPipeline creates a new pipeline.
func NewIngestPipeline(proc Proc, metrics domrepo.Metrics, opts ...PipelineOption) *IngestPipeline {
	p := &IngestPipeline{
		proc:    proc,
		metrics: metrics,
		maxRPS:  10,   // default throttle per user
		bufSize: 1000, // default buffer
		bufCh:   make(chan *models.InboundMessage, 1000),
		stopCh:  make(chan struct{}),
		limiter: ratelimit.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.bufSize != cap(p.bufCh) {
		p.bufCh = make(chan *models.InboundMessage, p.bufSize)
	}
	// metrics hooks using domain metrics if available
	p.bufDepthGauge = func(n int) { p.metrics.RecordLatency("pipeline_buffer_depth", float64(n)) }
	p.throttleWarn = func(user string) { p.metrics.RecordError("pipeline_throttle_" + user) }
	return p
}

// Start launches background flushing of buffered messages.
func (p *IngestPipeline) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go func() {
		backoff := 50 * time.Millisecond
		for {
			select {
			case <-p.stopCh:
				return
			case m := <-p.bufCh:
				if m == nil {
					continue
				}
				if err := p.proc.Process(ctx, m); err != nil {
					// exponential backoff with cap
					if backoff < 2*time.Second {
						backoff *= 2
					}
					p.metrics.RecordError("pipeline_flush")
					time.Sleep(backoff)
					// requeue if space; drop otherwise
					select {
					case p.bufCh <- m:
					default:
						p.metrics.RecordError("pipeline_buffer_drop")
					}
				} else {
					backoff = 50 * time.Millisecond
				}
			}
		}
	}()
}

// Stop stops the background flushing.
func (p *IngestPipeline) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.started = false
	p.mu.Unlock()
	close(p.stopCh)
}

// Process validates, throttles, and forwards the message downstream, buffering on errors.
func (p *IngestPipeline) Process(ctx context.Context, m *models.InboundMessage) error {
	start := time.Now()
	if err := validateMessage(m); err != nil {
		p.metrics.RecordError("pipeline_validate")
		return err
	}
	if !p.allow(m.UserID) {
		// throttled; record and drop silently
		p.metrics.RecordError("pipeline_throttle")
		if p.throttleWarn != nil {
			p.throttleWarn(m.UserID)
		}
		return nil
	}

	if err := p.proc.Process(ctx, m); err != nil {
		p.metrics.RecordError("pipeline_process")
		// buffer non-blocking
		select {
		case p.bufCh <- m:
			if p.bufDepthGauge != nil {
				p.bufDepthGauge(len(p.bufCh))
			}
		default:
			p.metrics.RecordError("pipeline_buffer_full")
		}
		return fmt.Errorf("pipeline downstream: %w", err)
	}
	p.metrics.RecordLatency("pipeline_process", time.Since(start).Seconds())
	return nil
}

func validateMessage(m *models.InboundMessage) error {
	if m == nil {
		return fmt.Errorf("message nil")
	}
	if m.UserID == "" {
		return fmt.Errorf("user_id empty")
	}
	if m.Text == "" {
		return fmt.Errorf("text empty")
	}
	return nil
}

func (p *IngestPipeline) allow(userID string) bool {
	if p.maxRPS <= 0 {
		return true
	}
	return p.limiter.Allow(userID, float64(p.maxRPS), float64(p.maxRPS))
}
