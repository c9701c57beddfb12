// Package constants provides shared constants for the sum-match application.
package constants

// Numeric constants
const (
	// ScaleFactor converts two-decimal amounts to exact integers
	ScaleFactor = 100

	// PrecisionEpsilon is the slack allowed when checking that an amount
	// carries no more than two decimal places (absorbs float64 noise)
	PrecisionEpsilon = 1e-6
)

// Input constraints
const (
	// MinInputCount is the smallest data set the application accepts
	MinInputCount = 10

	// MaxInputCount is the largest data set the application accepts
	MaxInputCount = 200
)

// Algorithm selection thresholds
const (
	// BitEnumMaxElements is the largest input size handled by exhaustive
	// bit enumeration (2^n subsets)
	BitEnumMaxElements = 25

	// MeetMiddleMaxElements is the largest input size handled by
	// meet-in-the-middle (2^(n/2) subsets per half)
	MeetMiddleMaxElements = 40
)

// Solver tuning defaults
const (
	// DefaultBatchSize is the number of masks/nodes a worker processes
	// between cancellation checks
	DefaultBatchSize = 1 << 14

	// DefaultMaxTableCells bounds the dynamic-programming table:
	// (n+1) layers times the feasible sum width
	DefaultMaxTableCells = 1 << 27
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for
	// data files (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
