// Command rdacopy converts images to R data files and inspects R data files.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"

	"github.com/arloliu/rdagrid/driver"
	"github.com/arloliu/rdagrid/rdata"
)

// env is the state shared by every command, built once flags are parsed.
type env struct {
	logLevel *string
	logger   log.Logger
	metrics  *prometheus.Registry
	drivers  *driver.Registry
}

func (e *env) setup(*kingpin.ParseContext) error {
	e.logger = newLogger(*e.logLevel)
	e.metrics = prometheus.NewRegistry()

	d, err := rdata.NewDriver(
		rdata.WithFs(afero.NewOsFs()),
		rdata.WithLogger(e.logger),
		rdata.WithMetrics(rdata.NewMetrics(e.metrics)),
	)
	if err != nil {
		return err
	}

	e.drivers = driver.NewRegistry()

	return e.drivers.Register(d)
}

func (e *env) close() {
	if e.drivers == nil {
		return
	}
	if err := e.drivers.Close(); err != nil {
		level.Warn(e.logger).Log("msg", "failed to close drivers", "err", err) //nolint:errcheck
	}
	if err := logMetrics(e.logger, e.metrics); err != nil {
		level.Warn(e.logger).Log("msg", "failed to gather metrics", "err", err) //nolint:errcheck
	}
}

// logMetrics writes every gathered series to logger at debug level.
func logMetrics(logger log.Logger, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}

	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			kv := []any{"msg", "metric", "name", mf.GetName()}
			for _, lp := range m.GetLabel() {
				kv = append(kv, lp.GetName(), lp.GetValue())
			}

			switch {
			case m.GetCounter() != nil:
				kv = append(kv, "value", m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				kv = append(kv, "count", h.GetSampleCount(), "sum", h.GetSampleSum())
			case m.GetGauge() != nil:
				kv = append(kv, "value", m.GetGauge().GetValue())
			}

			level.Debug(logger).Log(kv...) //nolint:errcheck
		}
	}

	return nil
}

func newLogger(lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	var opt level.Option
	switch lvl {
	case "debug":
		opt = level.AllowDebug()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		opt = level.AllowInfo()
	}

	return level.NewFilter(logger, opt)
}

func main() {
	app := kingpin.New("rdacopy", "Write rasters as R serialized objects and inspect the result.")
	app.HelpFlag.Short('h')

	e := &env{}
	e.logLevel = app.Flag("log.level", "Only log messages with the given severity or above.").
		Default("info").Enum("debug", "info", "warn", "error")
	app.PreAction(e.setup)

	addConvertCommand(app, e)
	addInfoCommand(app, e)

	_, err := app.Parse(os.Args[1:])
	e.close()
	if err != nil {
		exitWithErr(err)
	}
}

func exitWithErr(err error) {
	fmt.Fprintf(os.Stderr, "rdacopy: %v\n", err)
	os.Exit(1)
}
