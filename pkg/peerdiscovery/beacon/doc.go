// Package beacon discovers peers on the local network by exchanging identity
// records over UDP multicast.
//
// An Agent runs two kinds of tasks concurrently:
//   - a Responder bound to the wildcard address on the discovery port. It joins the
//     IPv4 and IPv6 discovery groups and answers every announcement with a unicast
//     reply carrying the local identity.
//   - one Announcer per qualifying local address of the selected interface. It sends a
//     single announcement to the discovery group and then reports every reply it receives.
//
// Every received record becomes an Observation handed to the configured Observer.
// No table of peers is kept unless the caller wraps the Observer in one.
//
// Example usage:
//
//	self, _ := identity.New("alice")
//	iface, err := common.LookupInterface(ctx, common.SystemEnumerator{}, "eth0")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	agent := beacon.NewAgent(self, iface.Addrs, beacon.WithInterfaceIndex(iface.Index))
//	if err := agent.Run(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// The first task to fail tears down every other task and its error is returned by Run.
// Cancelling the context stops all tasks and Run returns nil.
//
// IPv6 link-local addresses never get an announcer: replies to them cannot be routed
// back without a zone.
package beacon
