package beacon

import (
	"fmt"
	"net"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/lanbeacon/pkg/identity"
)

// ViaResponder marks observations made by the responder
const ViaResponder = "responder"

// Observation is a peer identity paired with the address it was seen from
type Observation struct {
	Peer   identity.Identity
	Source net.Addr
	// Via names the task that received the record: ViaResponder or an announcer's local address
	Via string
}

func (o Observation) String() string {
	return fmt.Sprintf("%s from %s", o.Peer.Name(), o.Source)
}

// Observer consumes observations. Observe is called from several goroutines at once.
type Observer interface {
	Observe(Observation)
}

// ObserverFunc adapts a function to the Observer interface
type ObserverFunc func(Observation)

// Observe calls f(obs)
func (f ObserverFunc) Observe(obs Observation) {
	f(obs)
}

// LogObserver reports every observation through gologger
type LogObserver struct {
	// RunID tags every line with the agent run that produced it
	RunID string
	// Silent prints bare "<name> <address>" lines that survive the silent log level
	Silent bool
}

// Observe logs the discovered peer
func (l LogObserver) Observe(obs Observation) {
	if l.Silent {
		gologger.Silent().Msgf("%s %s", obs.Peer.Name(), obs.Source)
		return
	}
	event := gologger.Info().Str("via", obs.Via)
	if l.RunID != "" {
		event = event.Str("run", l.RunID)
	}
	event.Msgf("Got peer %s from %s", obs.Peer.Name(), obs.Source)
}
