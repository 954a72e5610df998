package fetch

// Envelope is the {data, message, isOk} wrapper around every dashboard
// response. IsOk is a pointer so that an absent field, which leaves the HTTP
// status in charge, is not mistaken for false.
type Envelope[T any] struct {
	Data    *T     `json:"data"`
	Message string `json:"message"`
	IsOk    *bool  `json:"isOk"`
}

// rejected reports an explicit isOk:false
func (e *Envelope[T]) rejected() bool {
	return e.IsOk != nil && !*e.IsOk
}

// failure is the part of an error body the client reads
type failure struct {
	Message string `json:"message"`
}
