package kv

import (
	"errors"
)

var errUnknownBackend = errors.New("unknown storage backend")
