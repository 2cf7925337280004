// Package envelope defines the uniform {success, data|error} result returned by
// every remote accessor.
package envelope

type Result[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`

	// Err keeps the underlying error for callers that map it to a status code.
	Err error `json:"-"`
}

func OK[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: &data}
}

func Fail[T any](err error) Result[T] {
	if err == nil {
		panic("envelope: Fail called with nil error")
	}
	return Result[T]{Success: false, Error: err.Error(), Err: err}
}

// Unwrap returns the data and the underlying error, so a Result can be used
// like an ordinary (value, error) pair.
func (r Result[T]) Unwrap() (*T, error) {
	if !r.Success {
		return nil, r.Err
	}
	return r.Data, nil
}
