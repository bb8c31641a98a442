// Copyright 2016 Aleksandr Demakin. All rights reserved.

// Package mq implements interprocess queues logic.
// It provides access to system v message queues, identified by integer keys.
package mq
