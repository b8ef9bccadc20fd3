package dsdneo

import (
	"context"

	"github.com/brutella/dnssd"
)

// AdvertiseControlPort announces this engine's telemetry/control UDP port
// via mDNS so LAN tooling can discover a running instance without a
// configured hostname, the receive-side analog of the teacher's
// APRS-IS/IGate service discovery.
func AdvertiseControlPort(ctx context.Context, instanceName string, port int) (func(), error) {
	cfg := dnssd.Config{
		Name: instanceName,
		Type: "_dsdneo._udp",
		Port: port,
	}
	service, err := dnssd.NewService(cfg)
	if err != nil {
		return nil, err
	}
	responder, err := dnssd.NewResponder()
	if err != nil {
		return nil, err
	}
	handle, err := responder.Add(service)
	if err != nil {
		return nil, err
	}
	go func() {
		_ = responder.Respond(ctx)
	}()
	return func() { responder.Remove(handle) }, nil
}
