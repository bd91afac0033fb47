package tokenset

import "errors"

// ErrNoRefreshToken is recorded when an expired set has nothing to refresh with.
var ErrNoRefreshToken = errors.New("tokenset.no_refresh_token")
