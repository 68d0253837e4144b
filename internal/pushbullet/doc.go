// Package pushbullet is a small Pushbullet client: REST calls for devices
// and pushes, the realtime websocket stream, and a listener that forwards
// pushes addressed to one device.
package pushbullet
