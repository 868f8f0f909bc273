package filesystem

import (
	"context"
	"time"

	"github.com/GriffinCanCode/AgentOS/filesystem/internal/domain/sandbox"
	"github.com/GriffinCanCode/AgentOS/filesystem/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/filesystem/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/filesystem/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/AgentOS/filesystem/internal/shared/fserr"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// EntryType distinguishes files from directories
type EntryType string

const (
	TypeFile      EntryType = "file"
	TypeDirectory EntryType = "directory"
)

// Entry is a metadata snapshot of one filesystem object
type Entry struct {
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	Type        EntryType `json:"type"`
	Size        *int64    `json:"size"`
	Modified    time.Time `json:"modified"`
	Permissions string    `json:"permissions"`
	MIMEType    string    `json:"mime_type,omitempty"`
	Symlink     bool      `json:"symlink,omitempty"`
}

// IsDir reports whether the entry describes a directory
func (e Entry) IsDir() bool {
	return e.Type == TypeDirectory
}

// Skipped records an entry that could not be read during a traversal
type Skipped struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Listing is the result of one traversal. Entry order follows directory
// enumeration order and is unspecified.
type Listing struct {
	Path      string    `json:"path"`
	Entries   []Entry   `json:"items"`
	Skipped   []Skipped `json:"skipped"`
	Truncated bool      `json:"truncated"`
}

// Limits bounds traversals
type Limits struct {
	// MaxDepth is the deepest level that is still expanded during a recursive
	// listing. Direct children are level 0.
	MaxDepth int
	// FindLimit caps the number of results a find returns
	FindLimit int
}

// DefaultLimits mirrors the server defaults
func DefaultLimits() Limits {
	return Limits{MaxDepth: 10, FindLimit: 1000}
}

// FilesystemOps provides common filesystem operation helpers. Every path
// goes through Sandbox before Fs sees it.
type FilesystemOps struct {
	Sandbox *sandbox.Sandbox
	Fs      afero.Fs
	Logger  *logging.Logger
	Metrics *monitoring.Metrics
	Limits  Limits
}

// NewFilesystemOps wires the shared helpers. A nil logger discards output and
// a nil metrics collector disables instrumentation.
func NewFilesystemOps(sb *sandbox.Sandbox, fs afero.Fs, logger *logging.Logger, metrics *monitoring.Metrics, limits Limits) *FilesystemOps {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &FilesystemOps{
		Sandbox: sb,
		Fs:      fs,
		Logger:  logger.Named("filesystem"),
		Metrics: metrics,
		Limits:  limits,
	}
}

// Provider groups the operation sets behind one value
type Provider struct {
	*FilesystemOps
	Basic     *BasicOps
	Directory *DirectoryOps
	Metadata  *MetadataOps
	Search    *SearchOps
}

// NewProvider creates the filesystem provider
func NewProvider(ops *FilesystemOps) *Provider {
	return &Provider{
		FilesystemOps: ops,
		Basic:         &BasicOps{FilesystemOps: ops},
		Directory:     &DirectoryOps{FilesystemOps: ops},
		Metadata:      &MetadataOps{FilesystemOps: ops},
		Search:        &SearchOps{FilesystemOps: ops},
	}
}

// logger returns a logger tagged with the request ID in ctx, if any
func (ops *FilesystemOps) logger(ctx context.Context) *zap.Logger {
	if reqID := tracing.GetRequestID(ctx); reqID != "" {
		return ops.Logger.With(zap.String("request_id", reqID.String()))
	}
	return ops.Logger.Logger
}

// startOp begins timing op. The returned func records the outcome of *errp.
func (ops *FilesystemOps) startOp(op string, errp *error) func() {
	timer := monitoring.NewTimer(ops.Metrics, op)
	return func() {
		outcome := "ok"
		if *errp != nil {
			outcome = string(fserr.KindOf(*errp))
		}
		timer.Stop(outcome)
	}
}
