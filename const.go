// Copyright 2015 Aleksandr Demakin. All rights reserved.

package duplexchat

// O_NONBLOCK flag makes send/receive operations non-blocking.
const O_NONBLOCK = 0x00000040
