package encryption

// Result is the outcome of processing one file.
type Result struct {
	// Input is the file that was read.
	Input string

	// Output is the file that was written.
	Output string

	// OutputSize is the size of Output in bytes.
	OutputSize int64

	// Error is set when processing failed; Output is then empty.
	Error error
}
