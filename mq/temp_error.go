// Copyright 2016 Aleksandr Demakin. All rights reserved.

package mq

type temporaryError struct {
	inner error
}

func (e *temporaryError) Temporary() bool {
	return true
}

func (e *temporaryError) Error() string {
	return e.inner.Error()
}

func (e *temporaryError) Unwrap() error {
	return e.inner
}

func newTemporaryError(inner error) *temporaryError {
	return &temporaryError{inner: inner}
}

// IsTemporary returns true, if the operation may succeed later.
// It is the case for an empty queue on a non-blocking receive,
// and for a full queue on a non-blocking send.
func IsTemporary(e error) bool {
	if tmp, ok := e.(interface{ Temporary() bool }); ok {
		return tmp.Temporary()
	}
	return false
}
