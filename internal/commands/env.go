package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/finrep-dev/finrep/internal/auditlog"
	"github.com/finrep-dev/finrep/internal/config"
	"github.com/finrep-dev/finrep/internal/consolidation"
	"github.com/finrep-dev/finrep/internal/events"
	"github.com/finrep-dev/finrep/internal/ledger"
	"github.com/finrep-dev/finrep/internal/model"
	"github.com/finrep-dev/finrep/internal/ratio"
	"github.com/finrep-dev/finrep/internal/registry"
	"github.com/finrep-dev/finrep/internal/report"
	"github.com/finrep-dev/finrep/internal/statement"
)

const configFile = "finrep.yaml"

// env wires the reporting services for one CLI invocation: SQLite ledger,
// registry preloaded with persisted subsidiaries, event bus with audit-log
// and subsidiary-persistence subscribers.
type env struct {
	root     string
	cfg      *config.Config
	ledger   *ledger.SQLiteLedger
	registry *registry.Registry
	bus      *events.Bus
	builder  *statement.Builder
	ratios   *ratio.Calculator
	engine   *consolidation.Engine
	reports  *report.Generator
	log      *zap.Logger
}

func openEnv(ctx context.Context, root string) (*env, error) {
	log := newLogger()

	cfg, err := config.Load(filepath.Join(root, configFile))
	if err != nil {
		return nil, err
	}

	led, err := ledger.Open(filepath.Join(root, cfg.Ledger.Path), cfg.Reporting.Currency, cfg.Reporting.DecimalPlaces)
	if err != nil {
		return nil, err
	}

	reg := registry.New()
	subs, err := led.Subsidiaries(ctx)
	if err != nil {
		led.Close()
		return nil, err
	}
	for _, s := range subs {
		reg.PutSubsidiary(s)
	}

	bus := events.NewBus()
	bus.SubscribeAll(auditlog.Subscriber(root, func(err error) {
		log.Warn("audit log write failed", zap.Error(err))
	}))
	bus.Subscribe(events.TopicSubsidiaryRegistered, func(e events.Event) {
		s, ok := e.Payload.(model.Subsidiary)
		if !ok {
			return
		}
		if err := led.SaveSubsidiary(ctx, s); err != nil {
			log.Warn("persisting subsidiary failed", zap.Error(err))
		}
	})

	builder := statement.NewBuilder(led, reg, bus, log)
	calculator := ratio.NewCalculator(builder)

	return &env{
		root:     root,
		cfg:      cfg,
		ledger:   led,
		registry: reg,
		bus:      bus,
		builder:  builder,
		ratios:   calculator,
		engine:   consolidation.NewEngine(reg, bus, log),
		reports:  report.NewGenerator(builder, calculator),
		log:      log,
	}, nil
}

func (e *env) close() {
	_ = e.ledger.Close()
	_ = e.log.Sync()
}

// printJSON renders a result to stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}
