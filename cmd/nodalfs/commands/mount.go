package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/nodalfs/nodalfs/internal/config"
	"github.com/nodalfs/nodalfs/internal/logger"
	"github.com/nodalfs/nodalfs/pkg/kvstore"
	"github.com/nodalfs/nodalfs/pkg/metrics"
	"github.com/nodalfs/nodalfs/pkg/namespace"
	"github.com/nodalfs/nodalfs/pkg/objectstore"
	"github.com/nodalfs/nodalfs/pkg/vfsops"
)

var mountPath string

var mountCmd = &cobra.Command{
	Use:   "mount",
	Short: "Open the object store and bring up the filesystem core",
	Long: `Mount opens the embedded key-value store, ensures the root
directory exists, and brings up the VFS operation surface that a gateway
process attaches to in order to serve the filesystem over FUSE, NFS, or
any other front end.

Wiring the operation surface to an actual kernel mount point is the
gateway's job and is out of scope here: this command brings the core
up and holds it open until interrupted.

Examples:
  # Mount with the default configuration
  nodalfs mount

  # Mount with a custom configuration file
  nodalfs mount --config /etc/nodalfs/config.yaml

  # Override the mount path for this invocation
  nodalfs mount --path /mnt/data`,
	RunE: runMount,
}

func init() {
	mountCmd.Flags().StringVar(&mountPath, "path", "", "Mount point (overrides the configured mount.path)")
}

func runMount(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if mountPath != "" {
		cfg.Mount.Path = mountPath
	}

	if err := InitLogger(cfg); err != nil {
		return err
	}

	backend, err := kvstore.OpenBadgerStore(cfg.Store.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open store at %s: %w", cfg.Store.DataDir, err)
	}
	defer backend.Close()

	store := objectstore.New(kvstore.NewAdapter(backend))
	ns := namespace.New(store)

	rootCtx := namespace.RequestContext{UID: uint32(os.Getuid()), GID: uint32(os.Getgid())}
	if _, err := ns.EnsureRoot(rootCtx); err != nil {
		return fmt.Errorf("failed to ensure root directory: %w", err)
	}

	var registry *prometheus.Registry
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
	}
	m := metrics.NewMetrics(registry)
	ops := vfsops.New(ns, store, m)
	_ = ops // this command attaches no gateway; ops is built and held for the process lifetime only.

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		metricsServer = &http.Server{Addr: cfg.Metrics.Address, Handler: mux}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
		logger.Info("metrics listening", "address", cfg.Metrics.Address)
	}

	logger.Info("nodalfs core up", "mount_path", cfg.Mount.Path, "data_dir", cfg.Store.DataDir)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	<-ctx.Done()

	logger.Info("shutting down")
	if metricsServer != nil {
		_ = metricsServer.Shutdown(context.Background())
	}
	return nil
}
