package pushbullet

import (
	"context"
	"sort"
	"sync"

	"github.com/quantmind-br/jesse/internal/utils"
)

// PushLister is the part of the REST API the listener polls
type PushLister interface {
	Pushes(ctx context.Context, modifiedAfter float64, limit int) ([]Push, error)
}

// MessageSource delivers stream messages until ctx is done
type MessageSource interface {
	Run(ctx context.Context, handler func(Message)) error
}

// DeviceListener forwards pushes addressed to one device. Stream tickles
// trigger a poll for pushes modified since the newest one seen so far.
type DeviceListener struct {
	api        PushLister
	deviceIden string
	onPush     func(Push)
	logger     *utils.Logger

	mu           sync.Mutex
	lastModified float64
}

// NewDeviceListener creates a listener for deviceIden
func NewDeviceListener(api PushLister, deviceIden string, onPush func(Push), logger *utils.Logger) *DeviceListener {
	return &DeviceListener{
		api:        api,
		deviceIden: deviceIden,
		onPush:     onPush,
		logger:     logger.OrNop().WithComponent("listener"),
	}
}

// Prime records the newest existing push so history is not replayed
func (l *DeviceListener) Prime(ctx context.Context) error {
	pushes, err := l.api.Pushes(ctx, 0, 1)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(pushes) > 0 {
		l.lastModified = pushes[0].Modified
	}
	return nil
}

// LastModified returns the modification time of the newest push seen
func (l *DeviceListener) LastModified() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastModified
}

// HandleMessage polls for new pushes when msg announces them. Pushes are
// delivered oldest first, after the listener state is released, so onPush may
// block without stalling other callers.
func (l *DeviceListener) HandleMessage(ctx context.Context, msg Message) error {
	if !msg.IsPushTickle() {
		return nil
	}

	matched, err := l.poll(ctx)
	if err != nil {
		return err
	}
	for _, p := range matched {
		l.logger.Debug().Str("iden", p.Iden).Str("type", p.Type).Msg("Push for device")
		l.onPush(p)
	}
	return nil
}

// poll fetches pushes newer than lastModified, advances it and returns the
// active pushes addressed to this device
func (l *DeviceListener) poll(ctx context.Context) ([]Push, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	pushes, err := l.api.Pushes(ctx, l.lastModified, 0)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(pushes, func(i, j int) bool {
		return pushes[i].Modified < pushes[j].Modified
	})

	var matched []Push
	for _, p := range pushes {
		if p.Modified > l.lastModified {
			l.lastModified = p.Modified
		}
		if p.TargetDeviceIden != l.deviceIden || !p.Active {
			continue
		}
		matched = append(matched, p)
	}
	return matched, nil
}

// Listen primes the listener and then consumes stream until ctx is done
func (l *DeviceListener) Listen(ctx context.Context, stream MessageSource) error {
	if err := l.Prime(ctx); err != nil {
		return err
	}
	return stream.Run(ctx, func(msg Message) {
		if err := l.HandleMessage(ctx, msg); err != nil {
			l.logger.Error().Err(err).Msg("Failed to fetch pushes")
		}
	})
}
