package http

import (
	"errors"
	"net/http"

	"github.com/GriffinCanCode/AgentOS/filesystem/internal/shared/fserr"
	"github.com/gin-gonic/gin"
)

// StatusFor maps a failure kind to its HTTP status
func StatusFor(kind fserr.Kind) int {
	switch kind {
	case fserr.KindInvalid, fserr.KindWrongType, fserr.KindDecode:
		return http.StatusBadRequest
	case fserr.KindDenied:
		return http.StatusForbidden
	case fserr.KindNotFound:
		return http.StatusNotFound
	case fserr.KindTooLarge:
		return http.StatusRequestEntityTooLarge
	case fserr.KindNotEmpty:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the JSON error body for err and aborts the chain.
// Unclassified errors become io_error with a generic message.
func respondError(c *gin.Context, err error) {
	var fe *fserr.Error
	if !errors.As(err, &fe) {
		fe = fserr.Wrap(fserr.KindIO, "", "", "internal server error", err)
	}

	detail := fe.Detail
	if detail == "" {
		detail = string(fe.Kind)
	}
	if fe.Kind == fserr.KindIO && fe.Err != nil && fe.Op != "" {
		detail = fe.Error()
	}
	body := gin.H{
		"detail": detail,
		"kind":   fe.Kind,
	}
	switch fe.Kind {
	case fserr.KindDenied:
		if fe.Roots != nil {
			body["allowed_roots"] = fe.Roots
		}
	case fserr.KindTooLarge:
		body["limit"] = fe.Limit
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(StatusFor(fe.Kind), body)
}

// badRequest reports a request that failed binding or field validation.
// A body cut off by MaxBodySize is reported as too_large instead.
func badRequest(c *gin.Context, err error) {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		tooLarge := fserr.New(fserr.KindTooLarge, "bind", "", "request body too large")
		tooLarge.Limit = mbe.Limit
		tooLarge.Err = err
		respondError(c, tooLarge)
		return
	}
	respondError(c, fserr.Wrap(fserr.KindInvalid, "bind", "", err.Error(), err))
}
