// Copyright 2016 Aleksandr Demakin. All rights reserved.

package duplexchat

// Destroyer is an object which can be permanently removed.
type Destroyer interface {
	Destroy() error
}
