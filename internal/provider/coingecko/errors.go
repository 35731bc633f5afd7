package coingecko

import "errors"

// The two failure classes a fetch can surface. Callers match with errors.Is;
// anything wrapping ErrNetwork means the provider could not be reached or
// answered with a non-2xx status, anything wrapping ErrDataFormat means the
// response body did not carry the fields a snapshot needs.
var (
	ErrNetwork    = errors.New("market data provider unreachable")
	ErrDataFormat = errors.New("malformed market data response")
)
