package pushbullet_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/jesse/internal/pushbullet"
	"github.com/quantmind-br/jesse/internal/utils"
)

type fakeLister struct {
	responses [][]pushbullet.Push
	err       error
	after     []float64
	limits    []int
}

func (f *fakeLister) Pushes(_ context.Context, modifiedAfter float64, limit int) ([]pushbullet.Push, error) {
	f.after = append(f.after, modifiedAfter)
	f.limits = append(f.limits, limit)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return nil, nil
	}
	next := f.responses[0]
	f.responses = f.responses[1:]
	return next, nil
}

var tickle = pushbullet.Message{Type: pushbullet.MessageTickle, Subtype: pushbullet.SubtypePush}

func TestDeviceListener_ForwardsDevicePushesInOrder(t *testing.T) {
	lister := &fakeLister{responses: [][]pushbullet.Push{
		{{Iden: "old", Modified: 100}},
		{
			{Iden: "p3", Modified: 130, Active: true, TargetDeviceIden: "bandit"},
			{Iden: "other", Modified: 140, Active: true, TargetDeviceIden: "laptop"},
			{Iden: "p1", Modified: 110, Active: true, TargetDeviceIden: "bandit"},
		},
	}}

	var got []string
	l := pushbullet.NewDeviceListener(lister, "bandit", func(p pushbullet.Push) {
		got = append(got, p.Iden)
	}, utils.NewNopLogger())

	require.NoError(t, l.Prime(context.Background()))
	assert.Equal(t, float64(100), l.LastModified())
	assert.Equal(t, 1, lister.limits[0])

	require.NoError(t, l.HandleMessage(context.Background(), tickle))
	assert.Equal(t, []string{"p1", "p3"}, got)
	assert.Equal(t, float64(100), lister.after[1])
	assert.Equal(t, float64(140), l.LastModified(), "pushes for other devices still advance the cursor")

	require.NoError(t, l.HandleMessage(context.Background(), tickle))
	assert.Equal(t, float64(140), lister.after[2])
}

func TestDeviceListener_DeliversOutsideLock(t *testing.T) {
	lister := &fakeLister{responses: [][]pushbullet.Push{
		{{Iden: "p1", Modified: 110, Active: true, TargetDeviceIden: "bandit"}},
	}}

	var l *pushbullet.DeviceListener
	var seen float64
	l = pushbullet.NewDeviceListener(lister, "bandit", func(pushbullet.Push) {
		done := make(chan float64)
		go func() { done <- l.LastModified() }()
		select {
		case seen = <-done:
		case <-time.After(2 * time.Second):
			t.Error("listener state stayed locked during delivery")
		}
	}, nil)

	require.NoError(t, l.HandleMessage(context.Background(), tickle))
	assert.Equal(t, float64(110), seen)
}

func TestDeviceListener_IgnoresOtherMessages(t *testing.T) {
	lister := &fakeLister{}
	l := pushbullet.NewDeviceListener(lister, "bandit", func(pushbullet.Push) {
		t.Fatal("unexpected push")
	}, nil)

	require.NoError(t, l.HandleMessage(context.Background(), pushbullet.Message{Type: "tickle", Subtype: "device"}))
	require.NoError(t, l.HandleMessage(context.Background(), pushbullet.Message{Type: "push", Push: []byte(`{"type":"mirror"}`)}))
	assert.Empty(t, lister.after)
}

func TestDeviceListener_SkipsInactive(t *testing.T) {
	lister := &fakeLister{responses: [][]pushbullet.Push{
		{{Iden: "deleted", Modified: 5, Active: false, TargetDeviceIden: "bandit"}},
	}}
	var count int
	l := pushbullet.NewDeviceListener(lister, "bandit", func(pushbullet.Push) { count++ }, nil)

	require.NoError(t, l.HandleMessage(context.Background(), tickle))
	assert.Zero(t, count)
	assert.Equal(t, float64(5), l.LastModified())
}

func TestDeviceListener_PrimeEmptyAccount(t *testing.T) {
	l := pushbullet.NewDeviceListener(&fakeLister{}, "bandit", func(pushbullet.Push) {}, nil)
	require.NoError(t, l.Prime(context.Background()))
	assert.Zero(t, l.LastModified())
}

func TestDeviceListener_Errors(t *testing.T) {
	apiErr := errors.New("boom")
	l := pushbullet.NewDeviceListener(&fakeLister{err: apiErr}, "bandit", func(pushbullet.Push) {}, nil)

	assert.ErrorIs(t, l.Prime(context.Background()), apiErr)
	assert.ErrorIs(t, l.HandleMessage(context.Background(), tickle), apiErr)
}
