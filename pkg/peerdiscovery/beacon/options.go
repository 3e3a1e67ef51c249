package beacon

import "github.com/projectdiscovery/lanbeacon/pkg/protocol"

// Options configures an Agent and the tasks it spawns
type Options struct {
	// Protocol holds the port and groups shared by every instance (default: protocol.Latest)
	Protocol protocol.Protocol
	// Observer receives every well-formed record (default: LogObserver)
	Observer Observer
	// StrictDecode makes a malformed record fatal for an announcer
	StrictDecode bool
	// ReuseAddr sets SO_REUSEADDR on the responder socket
	ReuseAddr bool
	// InterfaceIndex pins outgoing announcements to an interface (0 = kernel choice)
	InterfaceIndex int
}

// Option mutates Options
type Option func(*Options)

// DefaultOptions returns the options used when none are given
func DefaultOptions() *Options {
	return &Options{
		Protocol: protocol.Latest,
		Observer: LogObserver{},
	}
}

// WithProtocol selects the protocol constants table
func WithProtocol(p protocol.Protocol) Option {
	return func(o *Options) {
		o.Protocol = p
	}
}

// WithObserver sets the observation sink
func WithObserver(observer Observer) Option {
	return func(o *Options) {
		if observer != nil {
			o.Observer = observer
		}
	}
}

// WithStrictDecode toggles fatal parse errors in announcers
func WithStrictDecode(strict bool) Option {
	return func(o *Options) {
		o.StrictDecode = strict
	}
}

// WithReuseAddr toggles SO_REUSEADDR on the responder socket
func WithReuseAddr(reuse bool) Option {
	return func(o *Options) {
		o.ReuseAddr = reuse
	}
}

// WithInterfaceIndex pins announcements to the interface with the given index
func WithInterfaceIndex(index int) Option {
	return func(o *Options) {
		o.InterfaceIndex = index
	}
}
