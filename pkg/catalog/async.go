package catalog

import "context"

// Result carries the outcome of an asynchronous fetch.
type Result[T any] struct {
	Value T
	Err   error
}

// The *Async variants run the call on a new goroutine and return a channel that
// receives exactly one value and is then closed. No ordering is guaranteed between
// concurrent calls, and the value is delivered from that goroutine: callers that
// own serialized state must hand the result over themselves.

// FetchVehiclesAsync is the non-blocking form of FetchVehicles.
func (c *Client) FetchVehiclesAsync(ctx context.Context) <-chan Result[[]Vehicle] {
	return goOnce(func() Result[[]Vehicle] {
		vehicles, err := c.FetchVehicles(ctx)
		return Result[[]Vehicle]{Value: vehicles, Err: err}
	})
}

// FetchBrandsAsync is the non-blocking form of FetchBrands.
func (c *Client) FetchBrandsAsync(ctx context.Context) <-chan []Brand {
	return goOnce(func() []Brand { return c.FetchBrands(ctx) })
}

// ApplyMutationAsync is the non-blocking form of ApplyMutation.
func (c *Client) ApplyMutationAsync(ctx context.Context, vehicle Vehicle, op Operation) <-chan bool {
	return goOnce(func() bool { return c.ApplyMutation(ctx, vehicle, op) })
}

func goOnce[T any](fn func() T) <-chan T {
	ch := make(chan T, 1)
	go func() {
		defer close(ch)
		ch <- fn()
	}()
	return ch
}
