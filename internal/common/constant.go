package common

// AuthorizationHeaderName carries "Bearer <jwt>" on mutating HTTP requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName is echoed back on every HTTP response.
const RequestIDHeaderName = "X-Request-Id"

// DefaultSnapshotKey is the fixed record id the embedded adapter stores its
// serialized engine under.
const DefaultSnapshotKey = "travel_db"

// TimestampLayout is a fixed-width millisecond ISO-8601 layout in UTC. Lexical
// order of formatted values equals chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// SQLiteHeader is the 16-byte magic string every SQLite database file starts with.
const SQLiteHeader = "SQLite format 3\x00"
