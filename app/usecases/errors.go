package usecases

// UseCaseError carries the HTTP status code the boundary should answer
// with. Handlers map Code and Message verbatim; anything else becomes a
// 500 with a generic message so internal details never leak.
type UseCaseError struct {
	Code    int
	Message string
}

func (e *UseCaseError) Error() string { return e.Message }
