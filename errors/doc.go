/*
Package errors provides semantic error types for the EntityRepo library.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound         = errors.New("entity not found")
	    ErrInvalidArgument  = errors.New("invalid argument")
	    ErrStoreUnavailable = errors.New("store unavailable")
	    ErrThrottled        = errors.New("store request throttled")
	    ErrNoTableMapping   = errors.New("no table mapping found for type")
	)

Usage:

	// Check error type
	err := repo.DeleteByID(ctx, "123")
	if err != nil {
	    if errors.IsNotFound(err) {
	        // Nothing to delete
	        return nil
	    }
	    return err
	}

	// Create typed errors
	err := errors.NewNotFoundError("User", "123")
	err := errors.NewInvalidArgumentError("id", "must not be nil")
	err := errors.NewThrottledError("BatchWriteItem", cause)

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
