package mysql

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	domain "github.com/aurainsight/aura-backend/internal/domain/reports"
)

// classifyWriteErr maps driver faults onto the store error taxonomy:
// connectivity problems are retriable later, anything else is a write fault.
func classifyWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if isConnErr(err) {
		return errors.Join(domain.ErrStoreUnavailable, err)
	}
	return errors.Join(domain.ErrStoreWriteFailed, err)
}

// classifyReadErr maps read faults; sql.ErrNoRows is handled by callers.
func classifyReadErr(err error) error {
	if err == nil {
		return nil
	}
	if isConnErr(err) {
		return errors.Join(domain.ErrStoreUnavailable, err)
	}
	return err
}

func isConnErr(err error) bool {
	var netErr net.Error
	return errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.As(err, &netErr)
}
