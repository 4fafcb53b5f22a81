// Package coordinator decides when address acquisition and lease renewal
// attempts start for one interface, and applies their results.
//
// All state lives behind a single mutex. Attempts run in their own goroutines
// and report back through completion handlers that take the same mutex, so
// the supervisor loop never blocks on the network.
package coordinator

import (
	"context"
	"sync"
	"time"

	"golang-ethmonitor/internal/pkg/logging"
	"golang-ethmonitor/internal/pkg/metrics"
	"golang-ethmonitor/internal/port"
	"golang-ethmonitor/internal/types"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Phase is the attempt state of the interface.
type Phase int

const (
	Idle Phase = iota
	Acquiring
	Renewing
	RetryPending
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Acquiring:
		return "acquiring"
	case Renewing:
		return "renewing"
	case RetryPending:
		return "retry_pending"
	default:
		return "unknown"
	}
}

// State is a snapshot of the attempt state. Deadline is set only for RetryPending.
type State struct {
	Phase    Phase
	Deadline time.Time
}

// Clock supplies the current time. time.Now readings carry a monotonic
// component, so deadline comparisons are immune to wall clock steps.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Options tunes a Coordinator. Zero values select the defaults.
type Options struct {
	RetryInterval    time.Duration // Delay after a failed acquisition, default 11s
	AttemptTimeout   time.Duration // Upper bound for one attempt, default 60s
	MaxRenewFailures int           // Consecutive renewal failures before re-acquiring, default 3
	Clock            Clock
	Metrics          *metrics.Metrics
}

// Coordinator owns the attempt state and lease of one interface.
type Coordinator struct {
	iface     string
	acquirer  port.LeaseAcquirer
	renewer   port.LeaseRenewer
	publisher port.StatusPublisher

	retryInterval    time.Duration
	attemptTimeout   time.Duration
	maxRenewFailures int
	clock            Clock
	metrics          *metrics.Metrics

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu            sync.Mutex
	phase         Phase
	deadline      time.Time
	lease         types.LeaseInfo
	renewAt       time.Time
	renewFailures int
	linkUp        bool
	generation    uint64
	cancelAttempt context.CancelFunc
	closed        bool
}

// New creates a coordinator for iface. The coordinator starts Idle with no lease.
func New(iface string, acquirer port.LeaseAcquirer, renewer port.LeaseRenewer, publisher port.StatusPublisher, opts Options) *Coordinator {
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = 11 * time.Second
	}
	if opts.AttemptTimeout <= 0 {
		opts.AttemptTimeout = 60 * time.Second
	}
	if opts.MaxRenewFailures <= 0 {
		opts.MaxRenewFailures = 3
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		iface:            iface,
		acquirer:         acquirer,
		renewer:          renewer,
		publisher:        publisher,
		retryInterval:    opts.RetryInterval,
		attemptTimeout:   opts.AttemptTimeout,
		maxRenewFailures: opts.MaxRenewFailures,
		clock:            opts.Clock,
		metrics:          opts.Metrics,
		ctx:              ctx,
		cancel:           cancel,
	}
}

func (c *Coordinator) logger() *logrus.Entry {
	return logging.WithComponentAndInterface("coordinator", c.iface)
}

// State returns the current attempt state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{Phase: c.phase, Deadline: c.deadline}
}

// Lease returns a copy of the current lease.
func (c *Coordinator) Lease() types.LeaseInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lease
}

// LeaseValid reports whether a lease from a successful acquisition is held.
func (c *Coordinator) LeaseValid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lease.Valid()
}

// OnLinkUp records the Up edge and publishes the "up" status.
func (c *Coordinator) OnLinkUp() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.linkUp = true
	c.publishLocked(DeviceKey, c.iface)
	c.publishLocked(StatusKey(c.iface), types.StatusUp)
}

// OnLinkDown invalidates the lease, drops any pending retry, cancels the
// in-flight attempt and publishes the "down" status. A cancelled attempt still
// runs its completion handler, which leaves the lease invalid.
func (c *Coordinator) OnLinkDown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.linkUp = false
	c.generation++
	c.lease.Reset()
	c.renewAt = time.Time{}
	c.renewFailures = 0
	if c.phase == RetryPending {
		c.phase = Idle
		c.deadline = time.Time{}
	}
	if c.cancelAttempt != nil {
		c.logger().WithField("state", c.phase.String()).Info("Cancelling in-flight attempt")
		c.cancelAttempt()
	}
	if c.metrics != nil {
		c.metrics.LeaseSeconds.Set(0)
	}

	c.publishLocked(DeviceKey, c.iface)
	c.publishLocked(StatusKey(c.iface), types.StatusDown)
}

// TryStartAcquisition starts an acquisition unless one is already in flight or
// a renewal is running. It reports whether an attempt was started.
func (c *Coordinator) TryStartAcquisition() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	if c.phase == Acquiring || c.phase == Renewing {
		c.logger().WithField("state", c.phase.String()).Debug("Attempt already in flight, not starting acquisition")
		if c.metrics != nil {
			c.metrics.AcquireTotal.WithLabelValues(metrics.ResultBusy).Inc()
		}
		return false
	}

	c.startAcquisitionLocked()
	return true
}

// DueForRetry starts a fresh acquisition when a retry is pending and its
// deadline has passed.
func (c *Coordinator) DueForRetry(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.phase != RetryPending || now.Before(c.deadline) {
		return false
	}

	c.logger().Info("Retrying acquisition")
	c.startAcquisitionLocked()
	return true
}

// DueForRenewal starts a renewal when no attempt is running, a valid lease is
// held and now has reached the lease's renewal time (T1, or the retry interval
// after a failed renewal). Before that it returns false, so an Up poll does
// not renew on its own.
func (c *Coordinator) DueForRenewal(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.phase != Idle || !c.lease.Valid() || now.Before(c.renewAt) {
		return false
	}

	c.startRenewalLocked()
	return true
}

// Wait blocks until no attempt goroutine is running.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// Close cancels in-flight attempts and waits for their completion handlers.
// No attempt starts after Close.
func (c *Coordinator) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
}

func (c *Coordinator) startAcquisitionLocked() {
	c.phase = Acquiring
	c.deadline = time.Time{}

	ctx, cancel := context.WithTimeout(c.ctx, c.attemptTimeout)
	c.cancelAttempt = cancel
	gen := c.generation
	id := uuid.NewString()
	started := c.clock.Now()

	c.logger().WithField("attempt", id).Info("Starting acquisition")

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer cancel()

		info, err := c.acquirer.AcquireLease(ctx, c.iface)
		c.onAcquisitionComplete(id, gen, started, info, err)
	}()
}

func (c *Coordinator) startRenewalLocked() {
	c.phase = Renewing

	ctx, cancel := context.WithTimeout(c.ctx, c.attemptTimeout)
	c.cancelAttempt = cancel
	gen := c.generation
	id := uuid.NewString()
	started := c.clock.Now()
	lease := c.lease

	c.logger().WithField("attempt", id).Debug("Starting renewal")

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer cancel()

		err := c.renewer.RenewLease(ctx, c.iface, &lease)
		c.onRenewalComplete(id, gen, started, &lease, err)
	}()
}

func (c *Coordinator) onAcquisitionComplete(id string, gen uint64, started time.Time, info *types.LeaseInfo, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	c.cancelAttempt = nil
	logger := c.logger().WithFields(logrus.Fields{
		"attempt":  id,
		"duration": now.Sub(started).String(),
	})
	c.observe("acquire", started, now)

	if gen != c.generation {
		logger.WithError(err).Info("Acquisition finished after link went down, discarding result")
		c.settleStaleLocked(now)
		c.countAcquire(metrics.ResultStale)
		return
	}

	if err != nil || !info.Valid() {
		c.phase = RetryPending
		c.deadline = now.Add(c.retryInterval)
		logger.WithError(err).WithField("retry_in", c.retryInterval.String()).Warn("Acquisition failed")
		c.countAcquire(metrics.ResultFail)
		return
	}

	c.lease = *info
	c.phase = Idle
	c.deadline = time.Time{}
	c.renewFailures = 0
	c.renewAt = now.Add(info.RenewalTime)
	c.countAcquire(metrics.ResultSuccess)
	if c.metrics != nil {
		c.metrics.LeaseSeconds.Set(info.LeaseDuration.Seconds())
	}

	logger.WithFields(logrus.Fields{
		"ip":         info.Address.String(),
		"lease_time": info.LeaseDuration.String(),
	}).Info("Acquired lease")

	dns1 := types.DNSString(info.DNS1)
	dns2 := types.DNSString(info.DNS2)
	c.publishLocked(InterfaceDNSKey(c.iface, 1), dns1)
	c.publishLocked(DNSKey(1), dns1)
	c.publishLocked(InterfaceDNSKey(c.iface, 2), dns2)
	c.publishLocked(DNSKey(2), dns2)

	status := types.StatusUp
	if dns1 != "" {
		status = types.StatusDHCP
	}
	c.publishLocked(StatusKey(c.iface), status)
}

func (c *Coordinator) onRenewalComplete(id string, gen uint64, started time.Time, lease *types.LeaseInfo, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	c.cancelAttempt = nil
	logger := c.logger().WithFields(logrus.Fields{
		"attempt":  id,
		"duration": now.Sub(started).String(),
	})
	c.observe("renew", started, now)

	if gen != c.generation {
		logger.WithError(err).Info("Renewal finished after link went down, discarding result")
		c.settleStaleLocked(now)
		c.countRenew(metrics.ResultStale)
		return
	}

	c.phase = Idle

	if err == nil {
		c.lease = *lease
		c.renewFailures = 0
		c.renewAt = now.Add(lease.RenewalTime)
		c.countRenew(metrics.ResultSuccess)
		if c.metrics != nil {
			c.metrics.LeaseSeconds.Set(lease.LeaseDuration.Seconds())
		}
		logger.WithField("lease_time", lease.LeaseDuration.String()).Debug("Renewed lease")
		return
	}

	c.renewFailures++
	c.countRenew(metrics.ResultFail)
	logger = logger.WithError(err).WithField("failures", c.renewFailures)

	if c.renewFailures < c.maxRenewFailures {
		c.renewAt = now.Add(c.retryInterval)
		logger.Warn("Renewal failed")
		return
	}

	// The lease can no longer be trusted: fall back to a fresh acquisition on the next poll.
	logger.Error("Renewal failed repeatedly, dropping lease")
	c.lease.Reset()
	c.renewFailures = 0
	c.renewAt = time.Time{}
	c.phase = RetryPending
	c.deadline = now
	if c.metrics != nil {
		c.metrics.LeaseSeconds.Set(0)
	}
	c.publishLocked(StatusKey(c.iface), types.StatusUp)
}

// settleStaleLocked releases the in-flight slot after a result from before a
// Down edge. If the link came back meanwhile, the Up edge could not start an
// acquisition, so one is scheduled for the next poll.
func (c *Coordinator) settleStaleLocked(now time.Time) {
	if c.linkUp {
		c.phase = RetryPending
		c.deadline = now
		return
	}
	c.phase = Idle
	c.deadline = time.Time{}
}

func (c *Coordinator) publishLocked(key, value string) {
	if err := c.publisher.Publish(key, value); err != nil {
		c.logger().WithError(err).WithField("key", key).Warn("Failed to publish status")
	}
}

func (c *Coordinator) observe(op string, started, now time.Time) {
	if c.metrics != nil {
		c.metrics.AttemptLatency.WithLabelValues(op).Observe(now.Sub(started).Seconds())
	}
}

func (c *Coordinator) countAcquire(result string) {
	if c.metrics != nil {
		c.metrics.AcquireTotal.WithLabelValues(result).Inc()
	}
}

func (c *Coordinator) countRenew(result string) {
	if c.metrics != nil {
		c.metrics.RenewTotal.WithLabelValues(result).Inc()
	}
}
