package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-ethmonitor/internal/adapter/dhcp"
	"golang-ethmonitor/internal/adapter/gate"
	infraDhcp "golang-ethmonitor/internal/adapter/infrastructure/dhcp"
	"golang-ethmonitor/internal/adapter/infrastructure/file"
	"golang-ethmonitor/internal/adapter/infrastructure/network"
	"golang-ethmonitor/internal/adapter/infrastructure/store"
	"golang-ethmonitor/internal/adapter/supervisor"
	"golang-ethmonitor/internal/pkg/config"
	"golang-ethmonitor/internal/pkg/coordinator"
	"golang-ethmonitor/internal/pkg/logging"
	"golang-ethmonitor/internal/pkg/metrics"
	"golang-ethmonitor/internal/port"
)

// runMonitor brings the interface up and supervises it until a shutdown
// signal arrives. It returns the process exit code.
func runMonitor(ifaceName string) int {
	cfg, err := config.Load(configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return exitInvalidArgument
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Config validation error: %v\n", err)
		return exitInvalidArgument
	}

	logging.InitLogger(cfg.Logging)

	logger := logging.WithInterface(ifaceName)
	logger.WithField("config_file", configFlag).Info("Starting ethmonitor")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case sig := <-sigChan:
			logger.WithField("signal", sig.String()).Info("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	networkMgr := network.NewManagerAdapter()
	fileMgr := file.NewManagerAdapter()
	links := network.NewLinkAdapter(networkMgr)

	// A missing link fails here too. Exiting right away would make a
	// respawning init restart us in a tight loop.
	if err := links.BringUp(ifaceName); err != nil {
		logger.WithError(err).WithField("sleep", cfg.Monitor.FatalSleep.String()).Error("Cannot bring up interface")
		fatalSleep(ctx, cfg.Monitor.FatalSleep)
		return exitNoDevice
	}

	monitor, err := gate.NewRadioGate(cfg.Gate.Path, fileMgr).ShouldMonitor()
	if err != nil {
		logger.WithError(err).Warn("Cannot read monitor gate, monitoring anyway")
	}
	if !monitor {
		logger.Info("Interface not in use, idling until shutdown")
		<-ctx.Done()
		return exitOK
	}

	statusStore, err := store.Open(cfg.Store.Path)
	if err != nil {
		logger.WithError(err).Warn("Cannot open status store, keeping status in memory")
		if statusStore, err = store.Open(""); err != nil {
			logger.WithError(err).Error("Cannot open in-memory status store")
			return exitNoDevice
		}
	}
	defer statusStore.Close()

	m := metrics.New()
	if cfg.Metrics.Listen != "" {
		go func() {
			if err := m.Serve(ctx, cfg.Metrics.Listen); err != nil {
				logging.WithComponent("metrics").WithError(err).Warn("Metrics endpoint stopped")
			}
		}()
	}

	leases := dhcp.NewLeaseManager(infraDhcp.NewClientAdapter(), networkMgr, fileMgr, dhcp.Options{
		RequestTimeout: cfg.Monitor.RequestTimeout,
		ResolvConf:     cfg.DNS.ResolvConf,
	})

	coord := coordinator.New(ifaceName, leases, leases, statusStore, coordinator.Options{
		RetryInterval:    cfg.Monitor.RetryInterval,
		AttemptTimeout:   cfg.Monitor.AttemptTimeout,
		MaxRenewFailures: cfg.Monitor.MaxRenewFailures,
		Metrics:          m,
	})

	var mgr port.NetworkConfigurationManager = supervisor.NewManager(ifaceName, links, coord, statusStore, supervisor.Options{
		InitialPollInterval: cfg.Monitor.InitialPollInterval,
		PollInterval:        cfg.Monitor.PollInterval,
		Metrics:             m,
	})

	if err := mgr.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.WithError(err).Error("Link supervisor failed")
	}

	if snap, err := statusStore.Snapshot(); err != nil {
		logger.WithError(err).Debug("Cannot read final status")
	} else {
		logger.WithField("status", snap).Debug("Final published status")
	}

	if cfg.Monitor.DownOnExit {
		if err := links.BringDown(mgr.GetInterfaceName()); err != nil {
			logger.WithError(err).Warn("Failed to bring interface down")
		}
	}

	logger.Info("Stopped")
	return exitOK
}

// fatalSleep is replaced in tests.
var fatalSleep = sleep

// sleep waits for d or until ctx is cancelled.
func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
