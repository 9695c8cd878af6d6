package extract

import "time"

// Result is the outcome of one extraction attempt. It is a value carried
// between pipeline stages and never persisted.
//
// A failed Result carries the failure as data: extractors report problems
// through it instead of returning errors, so the processing layer can
// classify every extraction failure as retryable without unwinding.
type Result struct {
	Success  bool
	Content  string
	Method   string
	Metadata map[string]string
	Error    string
}

// Succeed builds a successful Result, stamping the extraction time.
func Succeed(content, method string, metadata map[string]string) Result {
	if metadata == nil {
		metadata = make(map[string]string)
	}
	metadata["extraction_timestamp"] = time.Now().UTC().Format(time.RFC3339)
	return Result{
		Success:  true,
		Content:  content,
		Method:   method,
		Metadata: metadata,
	}
}

// Fail builds a failed Result from an error.
func Fail(err error) Result {
	return Result{Error: err.Error()}
}
