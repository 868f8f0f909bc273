package filesystem

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"github.com/GriffinCanCode/AgentOS/filesystem/internal/domain/sandbox"
	"github.com/GriffinCanCode/AgentOS/filesystem/internal/shared/fserr"
	"go.uber.org/zap"
)

// resolve passes raw through the sandbox. Nothing below this call ever checks
// containment again, so every operation must start here.
func (ops *FilesystemOps) resolve(ctx context.Context, op, raw string) (sandbox.ResolvedPath, error) {
	resolved, err := ops.Sandbox.Resolve(raw)
	if err == nil {
		return resolved, nil
	}

	var fe *fserr.Error
	if errors.As(err, &fe) {
		fe.Op = op
	}
	if errors.Is(err, fserr.ErrDenied) {
		ops.logger(ctx).Warn("path outside allowed roots",
			zap.String("op", op),
			zap.String("path", raw),
		)
	}
	return sandbox.ResolvedPath{}, err
}

// isHidden reports whether name carries the dot-prefix hidden marker
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// skipReason reduces a traversal error to its cause ("permission denied")
func skipReason(err error) string {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err.Error()
	}
	return err.Error()
}
