package contracts

import (
	"errors"
	"fmt"

	"github.com/light-bringer/invcat-service/internal/app/catalog/domain"
)

// RemoteError normalizes an error returned by a RemoteCatalog: not-found and
// unavailable errors keep their sentinel, anything else becomes unavailable.
func RemoteError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrProductNotFound) || errors.Is(err, domain.ErrRemoteUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrRemoteUnavailable, op, err)
}
