package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadFileRequestDefaults(t *testing.T) {
	req := ReadFileRequest{Path: "/workspace/a.txt"}
	assert.Equal(t, "utf-8", req.EncodingOrDefault())
	assert.Equal(t, int64(1024), req.MaxSizeOrDefault(1024))

	zero := int64(0)
	req = ReadFileRequest{Path: "/workspace/a.txt", Encoding: "latin1", MaxSize: &zero}
	assert.Equal(t, "latin1", req.EncodingOrDefault())
	assert.Equal(t, int64(0), req.MaxSizeOrDefault(1024))
}

func TestWriteFileRequestDefaults(t *testing.T) {
	req := WriteFileRequest{Path: "/workspace/a.txt"}
	assert.True(t, req.CreateDirsOrDefault())
	assert.Equal(t, "utf-8", req.EncodingOrDefault())

	no := false
	req.CreateDirs = &no
	assert.False(t, req.CreateDirsOrDefault())
}
