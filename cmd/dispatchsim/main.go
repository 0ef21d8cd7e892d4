// Command dispatchsim loads a dispatch configuration file, constructs a
// Dispatcher wired to in-memory collaborators, and replays a scripted
// sequence of synthetic host-engine callbacks so the routing decisions
// of pkg/dispatch can be observed without a real monitoring host.
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/merlincluster/dispatch/pkg/dispatch"
	"github.com/merlincluster/dispatch/pkg/dispatch/config"
	"github.com/merlincluster/dispatch/pkg/dispatch/definition"
	"github.com/merlincluster/dispatch/pkg/dispatch/types"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "dispatchsim",
		Short: "Replay synthetic monitoring callbacks through the dispatch module",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, metricsAddr)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a dispatch TOML config file (required)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090) until interrupted")
	cmd.MarkFlagRequired("config")

	return cmd
}

func run(configPath, metricsAddr string) error {
	f, err := config.Load(configPath)
	if err != nil {
		return err
	}
	self, dir, cfg, err := config.Build(f)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics := definition.NewMetrics(reg)
	logger := definition.NewLogger()
	objects := definition.NewMemoryObjectModel()
	expiration := definition.NewMemoryExpirationScheduler()
	ipc := definition.NewMemoryIPC()
	transport := definition.NewMemoryTransport()

	d := dispatch.New(self, dir, dir, definition.GobCodec{}, ipc, transport, cfg, metrics, logger, objects, expiration)

	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			logger.Infof("serving metrics on %s", metricsAddr)
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				logger.Errorf("metrics server: %v", err)
			}
		}()
	}

	for _, step := range script(self) {
		correlationID := uuid.New().String()
		res := d.Handle(step.Kind, step.Body, step.Inbound)
		logger.Infof("[%s] %s -> code=%d reason=%q", correlationID, step.Kind, res.ReturnCode, res.Reason)
	}

	for _, ev := range ipc.Sent() {
		logger.Infof("ipc: %s selection=%d code=%d", ev.Header.Kind, ev.Header.Selection, ev.Header.Code)
	}
	for _, s := range transport.Sent() {
		name := "<nil>"
		if s.Node != nil {
			name = s.Node.Name
		}
		logger.Infof("wire: %s -> %s", s.Event.Header.Kind, name)
	}

	if metricsAddr != "" {
		logger.Infof("script finished; metrics endpoint stays up, Ctrl-C to exit")
		select {}
	}
	return nil
}

// step is one scripted callback invocation.
type step struct {
	Kind    types.Kind
	Body    any
	Inbound *types.Node
}

// script produces a small, self-contained sequence of callbacks
// exercising a host check's full precheck/processed lifecycle followed
// by a notification that rides the hold slot behind it (property P3).
func script(self *types.Node) []step {
	now := time.Now()
	const objectID = 42

	return []step{
		{
			Kind: types.KindHostCheck,
			Body: &types.CheckResultBody{
				Phase:    types.PrecheckSync,
				ObjectID: objectID,
				HostName: "web01",
			},
		},
		{
			Kind: types.KindNotification,
			Body: &types.NotificationBody{
				Phase:     types.NotificationStart,
				Reason:    types.ReasonNormal,
				Type:      types.HostNotification,
				ObjectID:  objectID,
				CheckType: types.CheckActive,
				HostName:  "web01",
			},
		},
		{
			Kind: types.KindNotification,
			Body: &types.NotificationBody{
				Phase:    types.NotificationEnd,
				Reason:   types.ReasonNormal,
				Type:     types.HostNotification,
				ObjectID: objectID,
				HostName: "web01",
				Output:   "CRITICAL - host down",
			},
		},
		{
			Kind: types.KindHostCheck,
			Body: &types.CheckResultBody{
				Phase:        types.Processed,
				ObjectID:     objectID,
				HostName:     "web01",
				CheckType:    types.CheckActive,
				ReturnCode:   2,
				PluginOutput: "CRITICAL - host down",
				EndTime:      now,
			},
		},
	}
}
