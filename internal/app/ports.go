package app

import (
	"context"

	"github.com/quantmind-br/jesse/internal/domain"
	"github.com/quantmind-br/jesse/internal/history"
	"github.com/quantmind-br/jesse/internal/pushbullet"
	"github.com/quantmind-br/jesse/internal/runner"
)

//go:generate mockgen -source=ports.go -destination=../../tests/mocks/app_mock.go -package=mocks

// Fetcher retrieves a scan target into a fresh directory
type Fetcher interface {
	SmartFetch(ctx context.Context, source, destination string, opts domain.FetchOptions) (string, error)
}

// Scanner runs bandit against a directory
type Scanner interface {
	Run(ctx context.Context, target string) (*runner.Result, error)
}

// PushbulletAPI is the part of the Pushbullet REST API the service uses
type PushbulletAPI interface {
	Devices(ctx context.Context) ([]pushbullet.Device, error)
	FindDevice(ctx context.Context, nickname string) (*pushbullet.Device, error)
	CreateDevice(ctx context.Context, nickname string, update pushbullet.DeviceUpdate) (*pushbullet.Device, error)
	EditDevice(ctx context.Context, iden string, update pushbullet.DeviceUpdate) (*pushbullet.Device, error)
	Pushes(ctx context.Context, modifiedAfter float64, limit int) ([]pushbullet.Push, error)
	PushNote(ctx context.Context, title, body, deviceIden string) (*pushbullet.Push, error)
}

// Recorder persists scan outcomes
type Recorder interface {
	Put(rec history.Record) error
}
