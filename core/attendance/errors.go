package attendance

import (
	"fmt"

	"github.com/pkg/errors"
)

// UnreachableTargetError reports a target no countable number of attended classes can reach.
type UnreachableTargetError struct {
	TargetPercentage  float64
	CurrentPercentage float64
}

func (err *UnreachableTargetError) Error() string {
	if err.TargetPercentage >= 100 {
		return fmt.Sprintf("a 100%% target can only be reported once already met (currently %.1f%%)", err.CurrentPercentage)
	}
	return fmt.Sprintf(
		"target of %g%% is out of reach from %.1f%%: more classes would be needed than can be counted",
		err.TargetPercentage, err.CurrentPercentage,
	)
}

// IsUnreachable reports whether err (or any error it wraps) is an *UnreachableTargetError.
func IsUnreachable(err error) bool {
	var uErr *UnreachableTargetError
	return errors.As(err, &uErr)
}
