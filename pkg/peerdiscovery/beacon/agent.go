package beacon

import (
	"context"
	"net"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/lanbeacon/pkg/identity"
	"github.com/projectdiscovery/lanbeacon/pkg/peerdiscovery/common"
	"golang.org/x/sync/errgroup"
)

// Agent supervises one responder and one announcer per qualifying local address
type Agent struct {
	self       identity.Identity
	options    *Options
	responder  *Responder
	announcers []*Announcer
}

// NewAgent builds the task set for self. IPv6 link-local addresses in addrs get no announcer.
func NewAgent(self identity.Identity, addrs []net.IP, opts ...Option) *Agent {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	agent := &Agent{
		self:      self,
		options:   options,
		responder: NewResponder(self, options),
	}
	for _, ip := range addrs {
		if common.IsIPv6LinkLocal(ip) {
			gologger.Verbose().Msgf("skipping link-local address %s", ip)
			continue
		}
		agent.announcers = append(agent.announcers, NewAnnouncer(self, ip, options))
	}
	return agent
}

// Announcers returns the announcers the agent will run
func (a *Agent) Announcers() []*Announcer {
	return a.announcers
}

// Responder returns the agent's responder
func (a *Agent) Responder() *Responder {
	return a.responder
}

// Run starts every task and blocks until one fails or ctx is cancelled.
// The first failure is returned after all other tasks have closed their sockets.
func (a *Agent) Run(ctx context.Context) error {
	tasks := make([]task, 0, len(a.announcers)+1)
	tasks = append(tasks, a.responder.Run)
	for _, announcer := range a.announcers {
		tasks = append(tasks, announcer.Run)
	}

	gologger.Info().Msgf("Discovering peers as %s with %d announcer(s) on protocol %s", a.self, len(a.announcers), a.options.Protocol)
	return supervise(ctx, tasks...)
}

// task runs until ctx is done (returning nil) or it fails
type task func(ctx context.Context) error

// supervise runs tasks concurrently. The first error cancels the shared context so the
// remaining tasks tear down, and is returned once all of them have exited.
func supervise(ctx context.Context, tasks ...task) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, t := range tasks {
		t := t
		g.Go(func() error {
			return t(gctx)
		})
	}
	return g.Wait()
}
