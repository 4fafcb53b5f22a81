//go:build unit

package supervisor

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"golang-ethmonitor/internal/mock"
	"golang-ethmonitor/internal/pkg/coordinator"
	"golang-ethmonitor/internal/pkg/metrics"
	"golang-ethmonitor/internal/types"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

type memoryPublisher struct {
	mu     sync.Mutex
	values map[string]string
	writes []string
}

func (p *memoryPublisher) Publish(key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[key] = value
	p.writes = append(p.writes, key+"="+value)
	return nil
}

func (p *memoryPublisher) Lookup(key string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.values[key], nil
}

func (p *memoryPublisher) Writes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.writes...)
}

type harness struct {
	m         *Manager
	coord     *coordinator.Coordinator
	clock     *fakeClock
	publisher *memoryPublisher
	prober    *mock.MockLinkProber
	acquirer  *mock.MockLeaseAcquirer
	renewer   *mock.MockLeaseRenewer
	metrics   *metrics.Metrics
}

func newHarness(t *testing.T) *harness {
	ctrl := gomock.NewController(t)
	h := &harness{
		clock:     &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		publisher: &memoryPublisher{values: map[string]string{"net.eth0.status": "dhcp"}},
		prober:    mock.NewMockLinkProber(ctrl),
		acquirer:  mock.NewMockLeaseAcquirer(ctrl),
		renewer:   mock.NewMockLeaseRenewer(ctrl),
		metrics:   metrics.New(),
	}
	h.coord = coordinator.New("eth0", h.acquirer, h.renewer, h.publisher, coordinator.Options{
		Clock:   h.clock,
		Metrics: h.metrics,
	})
	h.m = NewManager("eth0", h.prober, h.coord, h.publisher, Options{
		InitialPollInterval: time.Millisecond,
		PollInterval:        time.Millisecond,
		Clock:               h.clock,
		Metrics:             h.metrics,
	})
	t.Cleanup(h.coord.Close)
	return h
}

func (h *harness) sample(state types.LinkState) {
	h.prober.EXPECT().Carrier("eth0").Return(state, nil)
	h.m.Step()
}

func lease(renewal time.Duration) *types.LeaseInfo {
	return &types.LeaseInfo{
		Address:       net.ParseIP("10.1.0.20"),
		DNS1:          net.ParseIP("10.1.0.1"),
		LeaseDuration: time.Hour,
		RenewalTime:   renewal,
	}
}

func TestManager_GetInterfaceName(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, "eth0", h.m.GetInterfaceName())
}

func TestManager_StartPublishesDown(t *testing.T) {
	h := newHarness(t)
	h.m.start()

	assert.Equal(t, types.LinkDown, h.m.State())
	assert.Equal(t, []string{"net.device=eth0", "net.eth0.status=down"}, h.publisher.Writes())
}

// Down, Down, Down, Up (attempt starts), Up (still running), attempt fails,
// Up before the retry deadline, Up after it.
func TestManager_PlugInScenario(t *testing.T) {
	h := newHarness(t)
	h.m.start()

	for i := 0; i < 3; i++ {
		h.sample(types.LinkDown)
	}
	assert.Equal(t, []string{"net.device=eth0", "net.eth0.status=down"}, h.publisher.Writes())

	release := make(chan struct{})
	gomock.InOrder(
		h.acquirer.EXPECT().AcquireLease(gomock.Any(), "eth0").DoAndReturn(
			func(_ context.Context, _ string) (*types.LeaseInfo, error) {
				<-release
				return nil, errors.New("no offer")
			}),
		h.acquirer.EXPECT().AcquireLease(gomock.Any(), "eth0").Return(lease(time.Hour), nil),
	)

	h.sample(types.LinkUp)
	assert.Equal(t, coordinator.Acquiring, h.coord.State().Phase)
	status, _ := h.publisher.Lookup("net.eth0.status")
	assert.Equal(t, "up", status)

	h.sample(types.LinkUp)
	assert.Equal(t, coordinator.Acquiring, h.coord.State().Phase)

	close(release)
	h.coord.Wait()
	failedAt := h.clock.Now()
	require.Equal(t, coordinator.State{Phase: coordinator.RetryPending, Deadline: failedAt.Add(11 * time.Second)}, h.coord.State())

	h.clock.Advance(10 * time.Second)
	h.sample(types.LinkUp)
	assert.Equal(t, coordinator.RetryPending, h.coord.State().Phase)

	h.clock.Advance(time.Second)
	h.sample(types.LinkUp)
	h.coord.Wait()

	assert.True(t, h.coord.LeaseValid())
	status, _ = h.publisher.Lookup("net.eth0.status")
	assert.Equal(t, "dhcp", status)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.Transitions.WithLabelValues("up")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.LinkUp))
}

func TestManager_SteadyStateDoesNotRepublish(t *testing.T) {
	h := newHarness(t)
	h.m.start()
	h.acquirer.EXPECT().AcquireLease(gomock.Any(), "eth0").Return(lease(time.Hour), nil).Times(1)

	h.sample(types.LinkUp)
	h.coord.Wait()
	writes := len(h.publisher.Writes())

	for i := 0; i < 5; i++ {
		h.clock.Advance(time.Minute)
		h.sample(types.LinkUp)
	}
	assert.Len(t, h.publisher.Writes(), writes)
}

func TestManager_RenewsWhileUp(t *testing.T) {
	h := newHarness(t)
	h.m.start()
	h.acquirer.EXPECT().AcquireLease(gomock.Any(), "eth0").Return(lease(0), nil)
	h.renewer.EXPECT().RenewLease(gomock.Any(), "eth0", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, l *types.LeaseInfo) error {
			l.LeaseDuration = 2 * time.Hour
			return nil
		}).Times(1)

	h.sample(types.LinkUp)
	h.coord.Wait()
	before := h.coord.Lease()
	writes := len(h.publisher.Writes())

	h.sample(types.LinkUp)
	h.coord.Wait()

	after := h.coord.Lease()
	assert.Equal(t, 2*time.Hour, after.LeaseDuration)
	after.LeaseDuration = before.LeaseDuration
	assert.Equal(t, before, after)
	assert.Len(t, h.publisher.Writes(), writes)
}

func TestManager_UnplugDuringAcquisition(t *testing.T) {
	h := newHarness(t)
	h.m.start()
	started := make(chan struct{})
	h.acquirer.EXPECT().AcquireLease(gomock.Any(), "eth0").DoAndReturn(
		func(ctx context.Context, _ string) (*types.LeaseInfo, error) {
			close(started)
			<-ctx.Done()
			return lease(time.Hour), nil
		})

	h.sample(types.LinkUp)
	<-started
	h.sample(types.LinkDown)
	h.coord.Wait()

	assert.Equal(t, types.LinkDown, h.m.State())
	assert.False(t, h.coord.LeaseValid())
	assert.Equal(t, coordinator.Idle, h.coord.State().Phase)
	status, _ := h.publisher.Lookup("net.eth0.status")
	assert.Equal(t, "down", status)

	h.sample(types.LinkDown)
	assert.Equal(t, coordinator.Idle, h.coord.State().Phase)
}

func TestManager_ProbeFailureIsNotAnEdge(t *testing.T) {
	h := newHarness(t)
	h.m.start()
	h.acquirer.EXPECT().AcquireLease(gomock.Any(), "eth0").Return(lease(time.Hour), nil).Times(1)

	h.sample(types.LinkUp)
	h.coord.Wait()
	writes := len(h.publisher.Writes())

	h.prober.EXPECT().Carrier("eth0").Return(types.LinkDown, errors.New("no such device"))
	h.m.Step()

	assert.Equal(t, types.LinkUp, h.m.State())
	assert.True(t, h.coord.LeaseValid())
	assert.Len(t, h.publisher.Writes(), writes)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.ProbeErrors))
}

func TestManager_Run(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())

	polled := make(chan struct{}, 1)
	h.prober.EXPECT().Carrier("eth0").DoAndReturn(func(string) (types.LinkState, error) {
		select {
		case polled <- struct{}{}:
		default:
		}
		return types.LinkDown, nil
	}).MinTimes(1)

	done := make(chan error, 1)
	go func() { done <- h.m.Run(ctx) }()

	select {
	case <-polled:
	case <-time.After(5 * time.Second):
		t.Fatal("supervisor never polled the link")
	}
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("supervisor did not stop")
	}
	status, _ := h.publisher.Lookup("net.eth0.status")
	assert.Equal(t, "down", status)
}

func TestNewManager_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := NewManager("eth0", mock.NewMockLinkProber(ctrl), nil, &memoryPublisher{values: map[string]string{}}, Options{})

	assert.Equal(t, coordinator.SystemClock{}, m.clock)
	assert.Equal(t, 5*time.Second, m.initialPollInterval)
	assert.Equal(t, 30*time.Second, m.pollInterval)
}
