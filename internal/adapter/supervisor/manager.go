// Package supervisor polls the carrier of one interface and drives the
// attempt coordinator on link edges and while the link stays up.
package supervisor

import (
	"context"
	"time"

	"golang-ethmonitor/internal/pkg/coordinator"
	"golang-ethmonitor/internal/pkg/logging"
	"golang-ethmonitor/internal/pkg/metrics"
	"golang-ethmonitor/internal/port"
	"golang-ethmonitor/internal/types"

	"github.com/sirupsen/logrus"
)

// Coordinator is the part of the attempt coordinator the supervisor drives.
type Coordinator interface {
	OnLinkUp()
	OnLinkDown()
	TryStartAcquisition() bool
	DueForRetry(now time.Time) bool
	DueForRenewal(now time.Time) bool
	Close()
}

// Options tunes the poll cadence. Zero values select the defaults.
type Options struct {
	InitialPollInterval time.Duration // Delay before the first sample, default 5s
	PollInterval        time.Duration // Delay between later samples, default 30s
	Clock               coordinator.Clock
	Metrics             *metrics.Metrics
}

// Manager is the link supervisor. It implements the NetworkConfigurationManager port.
type Manager struct {
	iface     string
	prober    port.LinkProber
	coord     Coordinator
	publisher port.StatusPublisher

	initialPollInterval time.Duration
	pollInterval        time.Duration
	clock               coordinator.Clock
	metrics             *metrics.Metrics

	state types.LinkState
}

// Ensure Manager implements the NetworkConfigurationManager port
var _ port.NetworkConfigurationManager = (*Manager)(nil)

// NewManager creates a supervisor for iface.
func NewManager(iface string, prober port.LinkProber, coord Coordinator, publisher port.StatusPublisher, opts Options) *Manager {
	if opts.InitialPollInterval <= 0 {
		opts.InitialPollInterval = 5 * time.Second
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 30 * time.Second
	}
	if opts.Clock == nil {
		opts.Clock = coordinator.SystemClock{}
	}

	return &Manager{
		iface:               iface,
		prober:              prober,
		coord:               coord,
		publisher:           publisher,
		initialPollInterval: opts.InitialPollInterval,
		pollInterval:        opts.PollInterval,
		clock:               opts.Clock,
		metrics:             opts.Metrics,
		state:               types.LinkDown,
	}
}

// GetInterfaceName returns the name of the network interface managed by this manager.
func (m *Manager) GetInterfaceName() string {
	return m.iface
}

// State returns the last sampled link state.
func (m *Manager) State() types.LinkState {
	return m.state
}

func (m *Manager) logger() *logrus.Entry {
	return logging.WithComponentAndInterface("supervisor", m.iface)
}

// Run polls the link until the context is cancelled, then cancels and waits
// for any in-flight attempt.
func (m *Manager) Run(ctx context.Context) error {
	logger := m.logger()
	logger.WithFields(logrus.Fields{
		"initial_poll_interval": m.initialPollInterval.String(),
		"poll_interval":         m.pollInterval.String(),
	}).Info("Starting link supervisor")

	m.start()
	defer m.coord.Close()

	timer := time.NewTimer(m.initialPollInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Link supervisor stopped due to context cancellation")
			return ctx.Err()
		case <-timer.C:
			m.Step()
			timer.Reset(m.pollInterval)
		}
	}
}

// start resets the link to Down and publishes it, so status left over from a
// previous run is never trusted.
func (m *Manager) start() {
	if prev, err := m.publisher.Lookup(coordinator.StatusKey(m.iface)); err != nil {
		m.logger().WithError(err).Debug("Could not read previous status")
	} else if prev != "" {
		m.logger().WithField("previous_status", prev).Info("Discarding status from previous run")
	}

	m.state = types.LinkDown
	m.coord.OnLinkDown()
	if m.metrics != nil {
		m.metrics.LinkUp.Set(0)
	}
}

// Step samples the link once and acts on the result.
func (m *Manager) Step() {
	logger := m.logger()

	sample, err := m.prober.Carrier(m.iface)
	if err != nil {
		logger.WithError(err).Warn("Cannot query link state, will try again")
		if m.metrics != nil {
			m.metrics.ProbeErrors.Inc()
		}
		return
	}

	if sample == m.state {
		if sample == types.LinkUp {
			now := m.clock.Now()
			if !m.coord.DueForRetry(now) {
				m.coord.DueForRenewal(now)
			}
		}
		return
	}

	logger.WithFields(logrus.Fields{
		"from": m.state.String(),
		"to":   sample.String(),
	}).Info("Link state changed")
	m.state = sample

	if m.metrics != nil {
		m.metrics.Transitions.WithLabelValues(sample.String()).Inc()
		if sample == types.LinkUp {
			m.metrics.LinkUp.Set(1)
		} else {
			m.metrics.LinkUp.Set(0)
		}
	}

	if sample == types.LinkDown {
		m.coord.OnLinkDown()
		return
	}

	m.coord.OnLinkUp()
	if !m.coord.TryStartAcquisition() {
		logger.Info("Attempt still in flight, not starting another acquisition")
	}
}
