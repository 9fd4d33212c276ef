package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrStorageUpload    = errors.New("storage upload failed")
	ErrExternalService  = errors.New("external service failed")
	ErrMutationRejected = errors.New("mutation failed")
)

// NewMutationError carries the user-facing failure notice of a write operation
// ("Failed to create post: <cause>") and keeps the status of the underlying error.
func NewMutationError(action string, cause error) *ApiErr {
	notice := fmt.Sprintf("Failed to %s", action)
	if cause != nil {
		notice = fmt.Sprintf("%s: %s", notice, causeMessage(cause))
	}
	return &ApiErr{
		StatusCode: StatusCode(cause),
		err:        tagged(notice, ErrMutationRejected),
		Cause:      cause,
	}
}

func NewStorageUploadError(path string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrStorageUpload,
		Details:    fmt.Sprintf("Upload of %s failed", path),
		Cause:      cause,
		Field:      "file",
	}
}

func NewExternalServiceError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrExternalService,
		Details:    fmt.Sprintf("%s request failed", service),
		Cause:      cause,
	}
}

func IsMutationError(err error) bool {
	return errors.Is(err, ErrMutationRejected)
}

func causeMessage(err error) string {
	var apiErr *ApiErr
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}
