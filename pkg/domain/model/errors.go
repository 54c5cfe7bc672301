package model

import "errors"

var (
	// ErrWriteLock is returned when the global offset is being written by someone else
	ErrWriteLock = errors.New("unable to acquire a write lock")

	// ErrUninitialized is returned when the global offset has never been set
	ErrUninitialized = errors.New("the global offset is not initialized")

	// ErrInvalidOffsetHours is returned for hours outside [-12, 14]
	ErrInvalidOffsetHours = errors.New("invalid offset hours")

	// ErrInvalidOffsetMinutes is returned for minutes outside [0, 59]
	ErrInvalidOffsetMinutes = errors.New("invalid offset minutes")

	// ErrInvalidOffsetString is returned when an offset string cannot be parsed
	ErrInvalidOffsetString = errors.New("unable to parse offset string")

	// ErrParse is returned when command output is not an offset
	ErrParse = errors.New("unable to parse time")

	// ErrTimeCommand is returned when the system time command cannot be executed
	ErrTimeCommand = errors.New("error executing command to get system time")

	// ErrDatetimeOverflow is returned when the shifted time is not representable
	ErrDatetimeOverflow = errors.New("datetime overflow")

	// ErrNoSource is returned when a detection chain has no sources
	ErrNoSource = errors.New("no offset source configured")
)
