package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/trackly/internal/common"
)

// domainErrors pass through to callers unchanged.
var domainErrors = []error{
	common.ErrNotFound,
	common.ErrNotAuthenticated,
	common.ErrInvalidCredentials,
	common.ErrDuplicateEmail,
	common.ErrMissingCredential,
	common.ErrWrongCredential,
	common.ErrSessionAlreadyActive,
	common.ErrInvalidSessionState,
	common.ErrInvalidEmail,
	common.ErrPasswordTooShort,
	common.ErrInvalidName,
	common.ErrInvalidImage,
}

// storageErr maps anything that is not a domain error to common.ErrStorage.
// The cause is kept in the message only, so driver error types do not leak
// through errors.As.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, d := range domainErrors {
		if errors.Is(err, d) {
			return err
		}
	}
	return fmt.Errorf("%w: %s: %v", common.ErrStorage, op, err)
}

type identityReader interface {
	Get() (int64, bool)
}

// requireIdentity is the single authorization check. It never touches
// storage.
func requireIdentity(c identityReader) (int64, error) {
	id, ok := c.Get()
	if !ok {
		return 0, common.ErrNotAuthenticated
	}
	return id, nil
}
