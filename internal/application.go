package internal

import (
	"context"
	"dir-compare/internal/configuration"
	"dir-compare/internal/logging"
	"dir-compare/internal/report"
	"dir-compare/internal/session"
	"dir-compare/internal/source"
	"dir-compare/internal/statistics"
	"dir-compare/internal/task"
	"dir-compare/internal/tree"
	"errors"
	"fmt"
	"github.com/oklog/run"
	"github.com/spf13/afero"
	"net/http"
	"net/http/pprof"
	"os"
	"syscall"
	"time"
)

// ApplicationOptions are the values given on the command line.
type ApplicationOptions struct {
	LeftPath  string
	RightPath string
	Watch     bool
}

func RunApplication(options ApplicationOptions) error {
	config := configuration.CurrentConfig

	criterion, err := source.ParseCriterion(config.Compare.Criterion, config.Compare.Precision)
	if err != nil {
		return err
	}
	provider, err := source.NewFileSystemProvider(afero.NewOsFs(), criterion, config.Compare.Ignore)
	if err != nil {
		return err
	}

	runner := task.NewRunner(config.Runner.Workers, config.Runner.QueueSize)
	defer func() {
		runner.Shutdown()
		if !runner.AwaitIdle(config.Runner.ShutdownTimeout) {
			logging.Warning("Background tasks did not finish within %s", config.Runner.ShutdownTimeout)
		}
	}()

	comparison, err := tree.New(options.LeftPath, options.RightPath, runner, provider)
	if err != nil {
		return err
	}
	s := session.New(comparison, session.Options{
		Report: report.Options{
			OnlyDifferences: config.Compare.OnlyDifferences,
			ShowDetails:     config.Compare.ShowDetails,
		},
		Watch:    options.Watch,
		Debounce: config.Watch.Debounce,
	}, options.LeftPath, options.RightPath)

	var g run.Group
	{
		ctx, cancel := context.WithCancel(context.Background())
		g.Add(func() error {
			return s.Run(ctx)
		}, func(err error) {
			cancel()
		})
	}
	{
		g.Add(run.SignalHandler(context.Background(), os.Interrupt, syscall.SIGTERM))
	}
	if config.Profiling.Enabled {
		mux := http.NewServeMux()
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

		address := fmt.Sprintf("%s:%d", config.Profiling.Host, config.Profiling.Port)
		addServer(&g, "profiling", address, mux)
	}
	if config.Statistics.Enabled {
		address := fmt.Sprintf(":%d", config.Statistics.Port)
		addServer(&g, "statistics", address, statistics.Handler())
	}

	err = g.Run()
	var signalError run.SignalError
	if errors.As(err, &signalError) {
		logging.Info("Received signal %s, exiting...", signalError.Signal)
		return nil
	}
	if err == nil {
		logging.Info("Done.")
	}
	return err
}

// addServer runs an http server as an actor of g, it is shut down together with the group
func addServer(g *run.Group, name string, address string, handler http.Handler) {
	server := &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Add(func() error {
		logging.Info("Starting %s webserver on %s...", name, address)
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("error running %s webserver: %w", name, err)
	}, func(err error) {
		logging.Info("Stopping %s webserver...", name)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logging.Warning("Error stopping %s webserver: %v", name, err)
		} else {
			logging.Debug("%s webserver stopped.", name)
		}
	})
}
