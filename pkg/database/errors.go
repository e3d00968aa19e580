package database

import "errors"

// ErrNotReady indicates the database pool has not been established.
var ErrNotReady = errors.New("database not ready")
