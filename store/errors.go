package store

import (
	"errors"
	"fmt"

	"github.com/fkohlgrueber/baum"
)

// Self-heal and bulk rejection reasons.
const (
	ReasonBadMagic      = "bad_magic"
	ReasonInvalidTag    = "invalid_tag"
	ReasonUnexpectedEOF = "unexpected_eof"
	ReasonTrailingData  = "trailing_data"
	ReasonDepthExceeded = "depth_exceeded"
	ReasonTooLarge      = "too_large"
	ReasonShape         = "shape"
	ReasonGenMismatch   = "gen_mismatch"
	ReasonStale         = "invalid_or_stale"
	ReasonSnapshotError = "snapshot_error"
)

var errShape = errors.New("store: unexpected entry shape")

// Reason maps a decode failure to a hook reason.
func Reason(err error) string {
	switch {
	case errors.Is(err, baum.ErrBadMagic):
		return ReasonBadMagic
	case errors.Is(err, baum.ErrInvalidTag):
		return ReasonInvalidTag
	case errors.Is(err, baum.ErrUnexpectedEOF):
		return ReasonUnexpectedEOF
	case errors.Is(err, baum.ErrTrailingData):
		return ReasonTrailingData
	case errors.Is(err, baum.ErrDepthExceeded):
		return ReasonDepthExceeded
	case errors.Is(err, baum.ErrTooLarge):
		return ReasonTooLarge
	default:
		return ReasonShape
	}
}

// DeleteError is returned when Delete could neither bump the generation nor
// remove the entry.
type DeleteError struct {
	Key     string
	BumpErr error
	DelErr  error
}

func (e *DeleteError) Error() string {
	switch {
	case e.BumpErr != nil && e.DelErr != nil:
		return fmt.Sprintf("delete %q failed: gen bump and delete failed: bump=%v; delete=%v",
			e.Key, e.BumpErr, e.DelErr)
	case e.BumpErr != nil:
		return fmt.Sprintf("delete %q: gen bump failed: %v", e.Key, e.BumpErr)
	case e.DelErr != nil:
		return fmt.Sprintf("delete %q: delete failed: %v", e.Key, e.DelErr)
	default:
		return fmt.Sprintf("delete %q: unknown error", e.Key)
	}
}

func (e *DeleteError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.BumpErr != nil {
		errs = append(errs, e.BumpErr)
	}
	if e.DelErr != nil {
		errs = append(errs, e.DelErr)
	}
	return errs
}
