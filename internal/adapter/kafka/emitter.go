package kafka

import (
	"errors"
	"log/slog"
	"time"

	"github.com/lovoo/goka"
	"github.com/niksmo/pharmacy/internal/core/domain"
	"github.com/niksmo/pharmacy/internal/core/port"
	"github.com/niksmo/pharmacy/pkg/schema"
)

var _ port.SearchQueryEmitter = (*SearchQueryEmitter)(nil)

// searchQueryCodec adapts a Serde to [goka.Codec].
type searchQueryCodec struct {
	serde Serde
}

func (c searchQueryCodec) Encode(value any) ([]byte, error) {
	v, ok := value.(schema.SearchQueryV1)
	if !ok {
		return nil, ErrInvalidValueType
	}
	return c.serde.Encode(v)
}

func (c searchQueryCodec) Decode(data []byte) (any, error) {
	var v schema.SearchQueryV1
	if err := c.serde.Decode(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

type EmitterOpt func(*emitterOpts) error

type emitterOpts struct {
	cfg      *ClientConfig
	serde    Serde
	gokaOpts []goka.EmitterOption
}

func EmitterClientOpt(cfg ClientConfig) EmitterOpt {
	return func(opts *emitterOpts) error {
		if err := cfg.validate(); err != nil {
			return err
		}
		opts.cfg = &cfg
		return nil
	}
}

func EmitterSerdeOpt(serde Serde) EmitterOpt {
	return func(opts *emitterOpts) error {
		if serde == nil {
			return errors.New("serde is nil")
		}
		opts.serde = serde
		return nil
	}
}

// EmitterGokaOpt passes options through to [goka.NewEmitter].
func EmitterGokaOpt(o ...goka.EmitterOption) EmitterOpt {
	return func(opts *emitterOpts) error {
		opts.gokaOpts = append(opts.gokaOpts, o...)
		return nil
	}
}

// A SearchQueryEmitter streams search queries keyed by session id. Emitting
// never blocks the caller; failures are only logged.
type SearchQueryEmitter struct {
	ge  *goka.Emitter
	now func() time.Time
}

func NewSearchQueryEmitter(opts ...EmitterOpt) (SearchQueryEmitter, error) {
	const op = "NewSearchQueryEmitter"

	var options emitterOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return SearchQueryEmitter{}, opErr(err, op)
		}
	}
	if options.cfg == nil || options.serde == nil {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	cfg := *options.cfg
	gokaOpts := options.gokaOpts
	if cfg.TLS != nil {
		saramaCfg := goka.DefaultConfig()
		saramaCfg.Net.TLS.Enable = true
		saramaCfg.Net.TLS.Config = cfg.TLS
		gokaOpts = append(gokaOpts,
			goka.WithEmitterProducerBuilder(goka.ProducerBuilderWithConfig(saramaCfg)),
		)
	}

	ge, err := goka.NewEmitter(
		cfg.SeedBrokers,
		goka.Stream(cfg.Topic),
		searchQueryCodec{options.serde},
		gokaOpts...,
	)
	if err != nil {
		return SearchQueryEmitter{}, opErr(err, op)
	}
	return SearchQueryEmitter{ge: ge, now: time.Now}, nil
}

func (e SearchQueryEmitter) EmitQuery(sessionID string, s domain.SearchState) {
	const op = "SearchQueryEmitter.EmitQuery"
	log := slog.With("op", op)

	v := schema.SearchQueryV1{
		SessionID: sessionID,
		Query:     s.Query,
		Searching: s.Searching,
		EmittedAt: e.now().UTC(),
	}

	promise, err := e.ge.Emit(sessionID, v)
	if err != nil {
		log.Error("failed to emit", "err", err)
		return
	}
	promise.Then(func(err error) {
		if err != nil {
			log.Error("failed to deliver", "err", err)
		}
	})
}

func (e SearchQueryEmitter) Close() {
	const op = "SearchQueryEmitter.Close"
	log := slog.With("op", op)

	log.Info("closing emitter...")
	if err := e.ge.Finish(); err != nil {
		log.Error("failed to finish gracefully", "err", err)
		return
	}
	log.Info("emitter is closed")
}
