package types

// ContextKey is the type for context keys set by middleware.
type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
)

// Header keys mirrored onto responses.
const (
	HeaderRequestID = "X-Request-ID"
)
