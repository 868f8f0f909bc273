package http

import (
	"fmt"
	"net/http"

	"github.com/GriffinCanCode/AgentOS/filesystem/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/filesystem/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/filesystem/internal/providers/filesystem"
	"github.com/GriffinCanCode/AgentOS/filesystem/internal/shared/types"
	"github.com/GriffinCanCode/AgentOS/filesystem/internal/shared/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ServiceName = "mcp-filesystem"
	Version     = "1.0.0"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	fs          *filesystem.Provider
	metrics     *monitoring.Metrics
	logger      *logging.Logger
	maxReadSize int64
}

// NewHandlers creates a new handler set. maxReadSize is the read limit used
// when a request does not name one.
func NewHandlers(fs *filesystem.Provider, metrics *monitoring.Metrics, logger *logging.Logger, maxReadSize int64) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	if maxReadSize <= 0 {
		maxReadSize = filesystem.DefaultMaxReadSize
	}
	return &Handlers{
		fs:          fs,
		metrics:     metrics,
		logger:      logger.Named("http"),
		maxReadSize: maxReadSize,
	}
}

// RegisterRoutes mounts every endpoint on r
func (h *Handlers) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/allowed-paths", h.AllowedPaths)
	r.GET("/stats", h.Stats)

	r.POST("/read-file", h.ReadFile)
	r.POST("/write-file", h.WriteFile)
	r.POST("/list-directory", h.ListDirectory)
	r.POST("/delete-path", h.DeletePath)
	r.POST("/create-directory", h.CreateDirectory)
	r.POST("/file-info", h.FileInfo)
	r.POST("/find", h.Find)
}

// Root identifies the service
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "MCP Filesystem Server",
		"version": Version,
	})
}

// Health reports liveness
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": ServiceName,
	})
}

// AllowedPaths lists the canonical sandbox roots
func (h *Handlers) AllowedPaths(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"allowed_paths": h.fs.Sandbox.Roots(),
	})
}

// ReadFile returns decoded file content
func (h *Handlers) ReadFile(c *gin.Context) {
	var req types.ReadFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := validate(utils.ValidatePath(req.Path), utils.ValidateEncoding(req.Encoding)); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.fs.Basic.Read(c.Request.Context(), req.Path, req.EncodingOrDefault(), req.MaxSizeOrDefault(h.maxReadSize))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// WriteFile encodes and writes file content
func (h *Handlers) WriteFile(c *gin.Context) {
	var req types.WriteFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := validate(utils.ValidatePath(req.Path), utils.ValidateEncoding(req.Encoding)); err != nil {
		badRequest(c, err)
		return
	}

	entry, err := h.fs.Basic.Write(c.Request.Context(), req.Path, *req.Content, req.EncodingOrDefault(), req.CreateDirsOrDefault())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   fmt.Sprintf("File written successfully: %s", entry.Path),
		"file_info": entry,
	})
}

// ListDirectory lists a directory, optionally recursively
func (h *Handlers) ListDirectory(c *gin.Context) {
	var req types.ListDirectoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidatePath(req.Path); err != nil {
		badRequest(c, err)
		return
	}

	listing, err := h.fs.Directory.List(c.Request.Context(), req.Path, req.Recursive, req.ShowHidden)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, listingBody(listing, gin.H{}))
}

// DeletePath removes a file or directory
func (h *Handlers) DeletePath(c *gin.Context) {
	var req types.DeletePathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidatePath(req.Path); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.fs.Basic.Delete(c.Request.Context(), req.Path, req.Recursive)
	if err != nil {
		respondError(c, err)
		return
	}

	var message string
	switch {
	case !res.Directory:
		message = "File deleted: " + res.Path
	case res.Recursive:
		message = "Directory deleted recursively: " + res.Path
	default:
		message = "Directory deleted: " + res.Path
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}

// CreateDirectory creates a directory and any missing parents
func (h *Handlers) CreateDirectory(c *gin.Context) {
	var req types.PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidatePath(req.Path); err != nil {
		badRequest(c, err)
		return
	}

	entry, err := h.fs.Directory.Create(c.Request.Context(), req.Path)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Directory created: " + entry.Path,
		"directory_info": entry,
	})
}

// FileInfo returns metadata for one path
func (h *Handlers) FileInfo(c *gin.Context) {
	var req types.PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidatePath(req.Path); err != nil {
		badRequest(c, err)
		return
	}

	entry, err := h.fs.Metadata.Stat(c.Request.Context(), req.Path)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Find searches a directory tree with a glob pattern
func (h *Handlers) Find(c *gin.Context) {
	var req types.FindRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := validate(utils.ValidatePath(req.Path), utils.ValidatePattern(req.Pattern)); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.fs.Search.Find(c.Request.Context(), req.Path, req.Pattern, req.ShowHidden, req.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Debug("find completed",
		zap.String("pattern", res.Pattern),
		zap.Int("matches", len(res.Entries)),
		zap.Bool("truncated", res.Truncated),
	)
	c.JSON(http.StatusOK, listingBody(&res.Listing, gin.H{"pattern": res.Pattern}))
}

// listingBody renders a traversal result. Empty slices are sent as [] rather
// than null.
func listingBody(l *filesystem.Listing, body gin.H) gin.H {
	items := l.Entries
	if items == nil {
		items = []filesystem.Entry{}
	}
	skipped := l.Skipped
	if skipped == nil {
		skipped = []filesystem.Skipped{}
	}

	body["path"] = l.Path
	body["items"] = items
	body["total_items"] = len(items)
	body["skipped"] = skipped
	body["truncated"] = l.Truncated
	return body
}

// validate returns the first non-nil error
func validate(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
