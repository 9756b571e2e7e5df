package engine

import "time"

type orderParams struct {
	id    uint64
	hasID bool
	ts    time.Time
}

// timestamp returns the caller-supplied arrival time, or samples the clock.
// Timestamps are record-keeping only; they never influence match ordering.
func (p orderParams) timestamp() time.Time {
	if p.ts.IsZero() {
		return time.Now()
	}
	return p.ts
}

// OrderOption customises order submission. The zero set of options means an
// engine-assigned id and a clock-sampled timestamp.
type OrderOption func(*orderParams)

// WithID submits the order under a caller-chosen id. Submission fails with
// ErrDuplicateOrderID if an order with this id already rests in the book.
func WithID(id uint64) OrderOption {
	return func(p *orderParams) {
		p.id = id
		p.hasID = true
	}
}

// WithTimestamp stamps the order with a caller-supplied arrival time instead
// of sampling the clock.
func WithTimestamp(ts time.Time) OrderOption {
	return func(p *orderParams) {
		p.ts = ts
	}
}

func applyOptions(opts []OrderOption) orderParams {
	var params orderParams
	for _, opt := range opts {
		opt(&params)
	}
	return params
}
