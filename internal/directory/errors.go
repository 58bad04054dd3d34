package directory

import (
	"errors"
	"fmt"
)

// RemoteServiceError is returned when the directory cannot be reached, answers
// with a non-200 status, or reports an application error in its payload.
type RemoteServiceError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RemoteServiceError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("directory error: %s", e.Message)
	case e.Err != nil:
		return fmt.Sprintf("directory request failed: %v", e.Err)
	default:
		return fmt.Sprintf("directory returned status %d", e.StatusCode)
	}
}

func (e *RemoteServiceError) Unwrap() error {
	return e.Err
}

// IsRemoteServiceError checks whether an error came from the remote directory.
func IsRemoteServiceError(err error) bool {
	var remoteErr *RemoteServiceError
	return errors.As(err, &remoteErr)
}
