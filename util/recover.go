package util

import (
	"errors"
	"fmt"
)

// InterfaceToError coerces a recovered panic value into an error.
func InterfaceToError(errorInterface interface{}) error {
	if errorInterface == nil {
		return nil
	}

	// Attempt to coerce into error
	err, ok := errorInterface.(error)
	if ok {
		return err
	}

	// Otherwise attempt to coerce into string
	stringifiedErr, ok := errorInterface.(string)
	if ok {
		return errors.New(stringifiedErr)
	}

	return fmt.Errorf("recovered from a panic of type %T: %v", errorInterface, errorInterface)
}

// SafeCall runs fn and converts any panic into a returned error.
func SafeCall[T any](fn func() (T, error)) (result T, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("recovered from panic: %w", InterfaceToError(recovered))
		}
	}()

	return fn()
}
