package overlay

// BroadcasterBuilderOption is a functional option for configuring a
// Broadcaster. Use the With* functions to create options.
type BroadcasterBuilderOption func(b *broadcasterImpl)

// WithAddress sets the listen address, e.g. "localhost:8691".
//
// Parameters:
//   - addr: the host:port to listen on
//
// Returns:
//   - BroadcasterBuilderOption: option function to apply
func WithAddress(addr string) BroadcasterBuilderOption {
	return func(b *broadcasterImpl) {
		if addr != "" {
			b.addr = addr
		}
	}
}

// WithPath sets the websocket endpoint path.
//
// Parameters:
//   - path: the URL path, e.g. "/readout"
//
// Returns:
//   - BroadcasterBuilderOption: option function to apply
func WithPath(path string) BroadcasterBuilderOption {
	return func(b *broadcasterImpl) {
		if path != "" {
			b.path = path
		}
	}
}
