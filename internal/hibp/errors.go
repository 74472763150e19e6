package hibp

import "errors"

// ErrRateLimitSuspected is returned when the collector sees too many
// unexpected HTTP statuses in a single run. The API answers 200 or 404 in
// normal operation; anything else repeated usually means the edge layer is
// throttling this client, and continuing would only make that worse.
var ErrRateLimitSuspected = errors.New("possible rate limiting encountered")
