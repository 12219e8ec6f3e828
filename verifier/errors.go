package verifier

import (
	"errors"
	"fmt"
)

// ErrVerificationFailure is the sentinel every VerificationFailure wraps,
// so callers that only care "did this proof fail" can use errors.Is
// without matching on Layer/Stage.
var ErrVerificationFailure = errors.New("verifier: proof rejected")

// VerificationFailure names exactly where a proof was rejected: which
// layer's sum-check (or -1 for a check outside any single layer) and
// which stage of it. Wrapping an inner error (a malformed transcript
// record, say) keeps that detail available via errors.Unwrap.
type VerificationFailure struct {
	Layer int
	Stage string
	Err   error
}

func (v *VerificationFailure) Error() string {
	if v.Err != nil {
		return fmt.Sprintf("verifier: layer %d, stage %s: %v", v.Layer, v.Stage, v.Err)
	}
	return fmt.Sprintf("verifier: layer %d, stage %s", v.Layer, v.Stage)
}

func (v *VerificationFailure) Unwrap() error { return v.Err }

// Is lets errors.Is(err, ErrVerificationFailure) match any
// *VerificationFailure regardless of its Layer/Stage/Err.
func (v *VerificationFailure) Is(target error) bool { return target == ErrVerificationFailure }

func fail(layer int, stage string, err error) error {
	return &VerificationFailure{Layer: layer, Stage: stage, Err: err}
}
