package server

import "errors"

var (
	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrMaxViewersReached    = errors.New("maximum viewers reached")
	ErrInvalidConfig        = errors.New("invalid server configuration")
)
