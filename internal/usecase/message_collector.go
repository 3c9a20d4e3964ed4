package usecase

import (
	"context"

	"PaisaPulse/internal/domain/models"
	drepo "PaisaPulse/internal/domain/repository"
	mid "PaisaPulse/internal/middleware"
)

// MessageCollector collects raw notifications from the message stream and
// feeds them through the ingest pipeline.
type MessageCollector struct {
	stream   drepo.MessageStream
	ingestor *MessageIngestor
	metrics  drepo.Metrics
	pipe     *mid.IngestPipeline
}

// NewMessageCollector creates a new MessageCollector instance.
func NewMessageCollector(stream drepo.MessageStream, ingestor *MessageIngestor, metrics drepo.Metrics, pipe *mid.IngestPipeline) *MessageCollector {
	return &MessageCollector{stream: stream, ingestor: ingestor, metrics: metrics, pipe: pipe}
}

// IsConnected returns true if the message stream is connected.
func (c *MessageCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

func (c *MessageCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		return err
	}
	if c.pipe != nil {
		c.pipe.Start(ctx)
	}
	msgCh, errCh := c.stream.Read(ctx)
	go c.consume(ctx, msgCh, errCh)
	return nil
}

func (c *MessageCollector) consume(ctx context.Context, msgCh <-chan *models.InboundMessage, errCh <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-errCh:
			if err != nil {
				c.metrics.RecordError("stream")
				_ = c.stream.Reconnect(ctx)
			}
		case m := <-msgCh:
			if m == nil {
				continue
			}
			if c.pipe != nil {
				_ = c.pipe.Process(ctx, m)
			} else {
				_ = c.ingestor.Process(ctx, m)
			}
		}
	}
}

func (c *MessageCollector) Stop() error { return c.stream.Close() }

// Ingestor returns the underlying MessageIngestor for lifecycle management.
func (c *MessageCollector) Ingestor() *MessageIngestor { return c.ingestor }

// Shutdown stops the pipeline and closes the stream.
func (c *MessageCollector) Shutdown(ctx context.Context) error {
	if c.pipe != nil {
		c.pipe.Stop()
	}
	return c.stream.Close()
}
