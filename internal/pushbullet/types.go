package pushbullet

import (
	"fmt"
	"strconv"
	"time"
)

// Push types
const (
	PushTypeNote = "note"
	PushTypeLink = "link"
	PushTypeFile = "file"
)

// Device is a Pushbullet device registered on the account
type Device struct {
	Iden         string  `json:"iden"`
	Active       bool    `json:"active"`
	Nickname     string  `json:"nickname"`
	Manufacturer string  `json:"manufacturer,omitempty"`
	Model        string  `json:"model,omitempty"`
	Type         string  `json:"type,omitempty"`
	Pushable     bool    `json:"pushable"`
	Created      float64 `json:"created"`
	Modified     float64 `json:"modified"`
}

// Name returns the nickname, or the iden for unnamed devices
func (d Device) Name() string {
	if d.Nickname != "" {
		return d.Nickname
	}
	return d.Iden
}

// DeviceUpdate holds the fields EditDevice changes; empty fields are left as is
type DeviceUpdate struct {
	Nickname     string `json:"nickname,omitempty"`
	Model        string `json:"model,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	Icon         string `json:"icon,omitempty"`
}

// Push is a note, link or file sent between devices
type Push struct {
	Iden             string  `json:"iden"`
	Active           bool    `json:"active"`
	Dismissed        bool    `json:"dismissed"`
	Type             string  `json:"type"`
	Title            string  `json:"title,omitempty"`
	Body             string  `json:"body,omitempty"`
	URL              string  `json:"url,omitempty"`
	GUID             string  `json:"guid,omitempty"`
	SenderName       string  `json:"sender_name,omitempty"`
	SourceDeviceIden string  `json:"source_device_iden,omitempty"`
	TargetDeviceIden string  `json:"target_device_iden,omitempty"`
	Created          float64 `json:"created"`
	Modified         float64 `json:"modified"`
}

// ModifiedAt converts the fractional epoch seconds of Modified into a time
func (p Push) ModifiedAt() time.Time {
	return epochTime(p.Modified)
}

func epochTime(sec float64) time.Time {
	return time.Unix(0, int64(sec*float64(time.Second))).UTC()
}

func formatEpoch(sec float64) string {
	return strconv.FormatFloat(sec, 'f', -1, 64)
}

// APIError is a non-2xx response from the REST API
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("pushbullet api error (status %d, %s): %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("pushbullet api error (status %d)", e.StatusCode)
}
