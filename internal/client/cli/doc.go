// Package cli provides the gophfeed terminal client.
//
// It wires configuration, the local timeline cache, the gRPC feed client and
// a timeline.Controller behind a cobra command tree:
//
//   - timeline: starts the controller, prints every feed event and reads
//     commands from stdin (r refresh, m more, p <text> post, l list,
//     s status, q quit).
//   - cache: prints the cached timeline without touching the network.
//
// Configuration flags (-a, -d, -l, -t, -k, -v, -c) belong to the config
// package; the command tree lets them pass through.
package cli
