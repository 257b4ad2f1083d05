package result

// Result carries either a value or the error that prevented producing it,
// so an async outcome can travel inside a single tea.Msg.
type Result[T any] struct {
	value T
	err   error
}

func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

func Err[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// From wraps a conventional (value, error) pair.
func From[T any](value T, err error) Result[T] {
	if err != nil {
		return Err[T](err)
	}
	return Ok(value)
}

func (r Result[T]) IsOk() bool {
	return r.err == nil
}

func (r Result[T]) IsErr() bool {
	return r.err != nil
}

func (r Result[T]) Unwrap() T {
	if r.IsErr() {
		panic("called Unwrap on an Err value: " + r.err.Error())
	}
	return r.value
}

func (r Result[T]) Err() error {
	return r.err
}
