package core

// Result is the tagged-variant outcome of every agent call: either Success
// or Error, never both. See spec §3.
type Result struct {
	Success bool

	// Success fields.
	Data        interface{}
	NextActions []string

	// Error fields.
	Error     string
	ErrorCode ErrorCode

	// Metadata is populated on both variants.
	Metadata map[string]interface{}
}

// SuccessResult builds a Success Result.
func SuccessResult(data interface{}, nextActions []string, metadata map[string]interface{}) *Result {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return &Result{
		Success:     true,
		Data:        data,
		NextActions: nextActions,
		Metadata:    metadata,
	}
}

// ErrorResult builds an Error Result.
func ErrorResult(message string, code ErrorCode, metadata map[string]interface{}) *Result {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return &Result{
		Success:   false,
		Error:     message,
		ErrorCode: code,
		Metadata:  metadata,
	}
}

// WithMetadata merges additional keys into the Result's metadata, returning
// the same Result for chaining.
func (r *Result) WithMetadata(key string, value interface{}) *Result {
	if r.Metadata == nil {
		r.Metadata = map[string]interface{}{}
	}
	r.Metadata[key] = value
	return r
}
