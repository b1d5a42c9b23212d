package kafka

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/niksmo/pharmacy/internal/core/domain"
	"github.com/niksmo/pharmacy/internal/core/port"
	"github.com/niksmo/pharmacy/pkg/retry"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.OrderPublisher = (*OrderProducer)(nil)

const (
	defaultProduceAttempts = 3
	defaultProduceDelay    = 200 * time.Millisecond
	maxProduceDelay        = 2 * time.Second
)

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl      ProducerClient
	encoder Encoder
	retry   retry.Policy
}

// ProducerClientOpt connects to the brokers and pings them.
func ProducerClientOpt(ctx context.Context, cfg ClientConfig) ProducerOpt {
	return func(opts *producerOpts) error {
		if err := cfg.validate(); err != nil {
			return err
		}

		kgoOpts := []kgo.Opt{
			kgo.SeedBrokers(cfg.SeedBrokers...),
			kgo.DefaultProduceTopic(cfg.Topic),
			kgo.RequiredAcks(kgo.AllISRAcks()),
		}
		if cfg.TLS != nil {
			kgoOpts = append(kgoOpts, kgo.DialTLSConfig(cfg.TLS))
		}

		cl, err := kgo.NewClient(kgoOpts...)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			cl.Close()
			return err
		}
		opts.cl = cl
		return nil
	}
}

// ProducerWithClientOpt uses an already built client.
func ProducerWithClientOpt(cl ProducerClient) ProducerOpt {
	return func(opts *producerOpts) error {
		if cl == nil {
			return errors.New("producer client is nil")
		}
		opts.cl = cl
		return nil
	}
}

func ProducerEncoderOpt(encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if encoder == nil {
			return errors.New("encoder is nil")
		}
		opts.encoder = encoder
		return nil
	}
}

func ProducerRetryOpt(maxAttempts int, backoff retry.Backoff) ProducerOpt {
	return func(opts *producerOpts) error {
		if maxAttempts < 1 {
			return errors.New("max attempts must be positive")
		}
		opts.retry.Attempts = maxAttempts
		opts.retry.Backoff = backoff
		return nil
	}
}

// An OrderProducer publishes placed orders keyed by order id.
type OrderProducer struct {
	cl      ProducerClient
	encoder Encoder
	retry   retry.Policy
}

// NewOrderProducer needs a client and an encoder option.
func NewOrderProducer(opts ...ProducerOpt) (OrderProducer, error) {
	const op = "NewOrderProducer"

	options := producerOpts{
		retry: retry.Policy{
			Attempts: defaultProduceAttempts,
			Backoff:  retry.Exponential(defaultProduceDelay, maxProduceDelay),
		},
	}
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return OrderProducer{}, opErr(err, op)
		}
	}
	if options.cl == nil || options.encoder == nil {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	options.retry.Retryable = kerr.IsRetriable
	return OrderProducer{
		cl:      options.cl,
		encoder: options.encoder,
		retry:   options.retry,
	}, nil
}

func (p OrderProducer) Close() {
	const op = "OrderProducer.Close"
	log := slog.With("op", op)
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p OrderProducer) PublishOrder(
	ctx context.Context, sessionID string, o domain.Order,
) error {
	const op = "OrderProducer.PublishOrder"

	if err := ctx.Err(); err != nil {
		return opErr(err, op)
	}

	r, err := p.createRecord(sessionID, o)
	if err != nil {
		return opErr(err, op)
	}

	err = retry.Do(ctx, p.retry, func(ctx context.Context) error {
		return p.produce(ctx, &kgo.Record{Key: r.Key, Value: r.Value})
	})
	if err != nil {
		return opErr(err, op)
	}

	slog.Debug("order published", "op", op, "orderID", o.ID)
	return nil
}

func (p OrderProducer) createRecord(
	sessionID string, o domain.Order,
) (*kgo.Record, error) {
	const op = "OrderProducer.createRecord"

	s := orderToSchemaV1(sessionID, o)
	s.PlacedAt = time.Now().UTC()
	v, err := p.encoder.Encode(s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return &kgo.Record{Key: []byte(s.OrderID), Value: v}, nil
}

func (p OrderProducer) produce(ctx context.Context, r *kgo.Record) error {
	const op = "OrderProducer.produce"
	res := p.cl.ProduceSync(ctx, r)
	if err := res.FirstErr(); err != nil {
		return opErr(err, op)
	}
	return nil
}
