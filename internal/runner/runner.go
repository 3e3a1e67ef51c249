package runner

import (
	"context"
	"errors"
	"net"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/lanbeacon/pkg/identity"
	"github.com/projectdiscovery/lanbeacon/pkg/peerdiscovery/beacon"
	"github.com/projectdiscovery/lanbeacon/pkg/peerdiscovery/common"
	"github.com/projectdiscovery/lanbeacon/pkg/peerdiscovery/peertable"
	"github.com/projectdiscovery/lanbeacon/pkg/protocol"
	errorutil "github.com/projectdiscovery/utils/errors"
	"github.com/rs/xid"
)

// Runner contains the internal logic of the program
type Runner struct {
	options    *Options
	self       identity.Identity
	enumerator common.Enumerator
	protocol   protocol.Protocol
	runID      string
	// sink receives every observation that passes the peer table
	sink beacon.Observer
}

// NewRunner instance. The identity is built here, once, before any task exists.
func NewRunner(options *Options) (*Runner, error) {
	self, err := identity.New(options.Name)
	if err != nil {
		return nil, errorutil.NewWithErr(err).Msgf("invalid name %q", options.Name)
	}
	runID := xid.New().String()
	return &Runner{
		options:    options,
		self:       self,
		enumerator: common.SystemEnumerator{},
		protocol:   protocol.Latest,
		runID:      runID,
		sink:       beacon.LogObserver{RunID: runID, Silent: options.Silent},
	}, nil
}

// Run the agent until ctx is cancelled or a task fails
func (r *Runner) Run(ctx context.Context) error {
	addrs, index, err := r.interfaceAddrs(ctx)
	if err != nil {
		return err
	}

	observer, err := r.observer()
	if err != nil {
		return err
	}

	gologger.Verbose().Msgf("run %s: %s on %s", r.runID, r.self, r.options.Interface)

	agent := beacon.NewAgent(r.self, addrs,
		beacon.WithProtocol(r.protocol),
		beacon.WithObserver(observer),
		beacon.WithStrictDecode(r.options.StrictDecode),
		beacon.WithReuseAddr(r.options.ReuseAddr),
		beacon.WithInterfaceIndex(index),
	)
	return agent.Run(ctx)
}

// interfaceAddrs returns the addresses of the selected interface and its index.
// A missing interface or one without usable addresses only leaves the responder running.
func (r *Runner) interfaceAddrs(ctx context.Context) ([]net.IP, int, error) {
	iface, err := common.LookupInterface(ctx, r.enumerator, r.options.Interface)
	if errors.Is(err, common.ErrInterfaceNotFound) {
		gologger.Warning().Msgf("interface %s not found, only answering announcements", r.options.Interface)
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, errorutil.NewWithErr(err).Msgf("could not list network interfaces")
	}

	if len(common.QualifyingAddrs(iface.Addrs)) == 0 {
		gologger.Warning().Msgf("interface %s has no address an announcer can use, only answering announcements", iface.Name)
	}
	return iface.Addrs, iface.Index, nil
}

// observer builds the observation sink, wrapped in a peer table when dedupe is enabled
func (r *Runner) observer() (beacon.Observer, error) {
	if r.options.Dedupe <= 0 {
		return r.sink, nil
	}

	table, err := peertable.New(r.options.DedupeSize, r.options.Dedupe)
	if err != nil {
		return nil, err
	}
	gologger.Verbose().Msgf("suppressing repeated peers for %s (up to %d entries)", r.options.Dedupe, r.options.DedupeSize)
	return table.Filter(r.sink), nil
}
