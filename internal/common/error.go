package common

import "fmt"

var (
	ErrDirectoryNotFound   = fmt.Errorf("target directory not found")
	ErrNotADirectory       = fmt.Errorf("target path is not a directory")
	ErrUnknownWeekdayToken = fmt.Errorf("unknown weekday token")
	ErrNoObservedData      = fmt.Errorf("no observed data in payload")
	ErrAboutDisabled       = fmt.Errorf("about page disabled")
)
