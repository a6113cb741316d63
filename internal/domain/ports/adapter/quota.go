package adapter

import "context"

// QuotaChecker performs one quota lookup against the upstream service.
// It never returns an error: every failure mode resolves to a (status, body)
// pair, with status 0 meaning no response was obtained. body is the raw JSON
// payload, or nil when the server sent none.
type QuotaChecker interface {
	Check(ctx context.Context, msisdn string) (status int, body []byte)
}
