package main

const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing library, invalid paths)
	ExitDataError   = 3 // Data error (unreadable PDF, validation failure)
)
