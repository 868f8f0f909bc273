package types

// ReadFileRequest reads a text file
type ReadFileRequest struct {
	Path     string `json:"path" binding:"required"`
	Encoding string `json:"encoding"`
	MaxSize  *int64 `json:"max_size" binding:"omitempty,min=0"`
}

// WriteFileRequest writes a text file. Content is a pointer so an empty
// string is a valid body while a missing field is not.
type WriteFileRequest struct {
	Path       string  `json:"path" binding:"required"`
	Content    *string `json:"content" binding:"required"`
	Encoding   string  `json:"encoding"`
	CreateDirs *bool   `json:"create_dirs"`
}

// ListDirectoryRequest lists a directory
type ListDirectoryRequest struct {
	Path       string `json:"path" binding:"required"`
	Recursive  bool   `json:"recursive"`
	ShowHidden bool   `json:"show_hidden"`
}

// DeletePathRequest deletes a file or directory
type DeletePathRequest struct {
	Path      string `json:"path" binding:"required"`
	Recursive bool   `json:"recursive"`
}

// PathRequest names a single path (create-directory, file-info)
type PathRequest struct {
	Path string `json:"path" binding:"required"`
}

// FindRequest searches below a directory with a glob pattern
type FindRequest struct {
	Path       string `json:"path" binding:"required"`
	Pattern    string `json:"pattern" binding:"required"`
	ShowHidden bool   `json:"show_hidden"`
	Limit      int    `json:"limit" binding:"omitempty,min=0"`
}

// EncodingOrDefault returns the requested encoding or utf-8
func (r ReadFileRequest) EncodingOrDefault() string {
	return orUTF8(r.Encoding)
}

// MaxSizeOrDefault returns the requested limit or def when unset
func (r ReadFileRequest) MaxSizeOrDefault(def int64) int64 {
	if r.MaxSize == nil {
		return def
	}
	return *r.MaxSize
}

// EncodingOrDefault returns the requested encoding or utf-8
func (r WriteFileRequest) EncodingOrDefault() string {
	return orUTF8(r.Encoding)
}

// CreateDirsOrDefault defaults to creating missing parents
func (r WriteFileRequest) CreateDirsOrDefault() bool {
	return r.CreateDirs == nil || *r.CreateDirs
}

func orUTF8(encoding string) string {
	if encoding == "" {
		return "utf-8"
	}
	return encoding
}
