package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"os"

	"github.com/niksmo/pharmacy/config"
	"github.com/niksmo/pharmacy/internal/adapter"
	"github.com/niksmo/pharmacy/internal/adapter/catalog"
	"github.com/niksmo/pharmacy/internal/adapter/httphandler"
	"github.com/niksmo/pharmacy/internal/adapter/kafka"
	"github.com/niksmo/pharmacy/internal/adapter/mockauth"
	"github.com/niksmo/pharmacy/internal/adapter/telemetry"
	"github.com/niksmo/pharmacy/internal/core/domain"
	"github.com/niksmo/pharmacy/internal/core/port"
	"github.com/niksmo/pharmacy/internal/core/service"
	"github.com/niksmo/pharmacy/pkg/schema"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type serdes struct {
	orderPlaced kafka.Serde
	searchQuery kafka.Serde
}

// events stay nil when no brokers are configured.
type events struct {
	orders  *kafka.OrderProducer
	queries *kafka.SearchQueryEmitter
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	shutdownTP telemetry.ShutdownFunc
	catalog    catalog.Static
	directory  mockauth.Directory
	serdes     serdes
	events     events
	sessions   *service.SessionManager
	service    service.Service
	httpServer httphandler.HTTPServer
	group      *errgroup.Group
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initTelemetry()
	app.initOutboundAdapters()
	app.initEvents()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initTelemetry() {
	const op = "App.initTelemetry"

	shutdown, err := telemetry.Setup(app.ctx, telemetry.Config{
		Exporter:    app.cfg.Tracing.Exporter,
		Endpoint:    app.cfg.Tracing.Endpoint,
		ServiceName: app.cfg.Tracing.ServiceName,
	})
	if err != nil {
		app.fallDown(op, err)
	}
	app.shutdownTP = shutdown
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	app.catalog = catalog.New()

	directory, err := mockauth.New(mockauth.LatencyOpt(app.cfg.Auth.Latency))
	if err != nil {
		app.fallDown(op, err)
	}
	app.directory = directory
}

func (app *App) initEvents() {
	const op = "App.initEvents"

	brokerCfg := app.cfg.Broker
	if !brokerCfg.Enabled() {
		slog.Info("no seed brokers, events are not published", "op", op)
		return
	}

	tlsCfg := app.makeTLSConfig()
	app.initSerdes()

	orders, err := kafka.NewOrderProducer(
		kafka.ProducerClientOpt(app.ctx, kafka.ClientConfig{
			SeedBrokers: brokerCfg.SeedBrokers,
			Topic:       brokerCfg.Topics.Orders,
			TLS:         tlsCfg,
		}),
		kafka.ProducerEncoderOpt(app.serdes.orderPlaced),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	queries, err := kafka.NewSearchQueryEmitter(
		kafka.EmitterClientOpt(kafka.ClientConfig{
			SeedBrokers: brokerCfg.SeedBrokers,
			Topic:       brokerCfg.Topics.SearchQueries,
			TLS:         tlsCfg,
		}),
		kafka.EmitterSerdeOpt(app.serdes.searchQuery),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.events.orders = &orders
	app.events.queries = &queries
}

func (app *App) makeTLSConfig() *tls.Config {
	const op = "App.makeTLSConfig"

	files := app.cfg.Broker.TLS
	if !files.Enabled() {
		return nil
	}
	tlsCfg, err := adapter.MakeTLSConfig(files.CA, files.Cert, files.Key)
	if err != nil {
		app.fallDown(op, err)
	}
	return tlsCfg
}

// initSerdes uses the schema registry when it is configured and bare Avro
// otherwise.
func (app *App) initSerdes() {
	const op = "App.initSerdes"

	urls := app.cfg.Broker.SchemaRegistryURLs
	if len(urls) == 0 {
		app.serdes.orderPlaced = kafka.NewAvroSerde(schema.OrderPlacedV1Avro())
		app.serdes.searchQuery = kafka.NewAvroSerde(schema.SearchQueryV1Avro())
		return
	}

	srClient, err := schema.NewRegistryClient(urls)
	if err != nil {
		app.fallDown(op, err)
	}
	registrar := schema.NewRegistrar(srClient)
	topics := app.cfg.Broker.Topics

	orderPlaced, err := schema.NewSerdeOrderPlacedV1(
		app.ctx,
		schema.SubjectOpt(schema.SubjectName(topics.Orders)),
		schema.SchemaIdentifierOpt(registrar),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	searchQuery, err := schema.NewSerdeSearchQueryV1(
		app.ctx,
		schema.SubjectOpt(schema.SubjectName(topics.SearchQueries)),
		schema.SchemaIdentifierOpt(registrar),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.serdes.orderPlaced = orderPlaced
	app.serdes.searchQuery = searchQuery
}

func (app *App) initCoreService() {
	sessionCfg := service.SessionConfig{
		IdleTimeout:   app.cfg.Session.IdleTimeout,
		SweepInterval: app.cfg.Session.SweepInterval,
		Directory:     app.directory,
	}
	var publisher port.OrderPublisher
	if app.events.orders != nil {
		publisher = app.events.orders
		sessionCfg.Emitter = app.events.queries
	}

	app.sessions = service.NewSessionManager(sessionCfg)
	app.service = service.New(
		app.sessions,
		app.catalog,
		publisher,
		domain.Pricing{
			FreeShippingThreshold: decimal.NewFromFloat(app.cfg.Checkout.FreeShippingThreshold),
			ShippingFee:           decimal.NewFromFloat(app.cfg.Checkout.ShippingFee),
			TaxRate:               decimal.NewFromFloat(app.cfg.Checkout.TaxRate),
		},
	)
}

func (app *App) initInboundAdapters() {
	s := app.service
	tokens := httphandler.NewTokenIssuer(
		app.cfg.Session.TokenSecret, app.cfg.Session.TokenTTL,
	)
	handler := httphandler.NewRouter(tokens, httphandler.Ports{
		Sessions: s,
		Catalog:  s,
		Cart:     s,
		Wishlist: s,
		Accounts: s,
		Search:   s,
		Checkout: s,
	})
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

// Run starts the HTTP server and the session sweeper. stopFn is called when
// the server stops on its own. A server that fails to listen or serve also
// stops the sweeper through the group context.
func (app *App) Run(stopFn context.CancelFunc) {
	g, ctx := errgroup.WithContext(app.ctx)
	g.Go(func() error {
		return app.httpServer.Run(stopFn)
	})
	g.Go(func() error {
		app.sessions.Run(ctx)
		return nil
	})
	app.group = g

	slog.Info("application is running")
}

// Close expects the context passed to New to be done already.
func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.group != nil {
		if err := app.group.Wait(); err != nil {
			slog.Error("component stopped with error", "err", err)
		}
	}

	if app.events.orders != nil {
		app.events.orders.Close()
	}
	if app.events.queries != nil {
		app.events.queries.Close()
	}

	if err := app.shutdownTP(ctx); err != nil {
		slog.Error("failed to flush traces", "err", err)
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
