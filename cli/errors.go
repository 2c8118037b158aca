package cli

// ErrorCode defines error types for CLI operations
type ErrorCode string

const (
	NoCrateSpecified ErrorCode = "NoCrateSpecified"
	InvalidArguments ErrorCode = "InvalidArguments"
	RenderFailed     ErrorCode = "RenderFailed"
	BrowserFailed    ErrorCode = "BrowserFailed"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}
