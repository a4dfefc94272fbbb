package main

import "fmt"

type ErrUnknownCommand struct {
	Name string
}

func (err ErrUnknownCommand) Error() string {
	return fmt.Sprintf("unknown command %q", err.Name)
}

type ErrMissingModule struct{}

func (err ErrMissingModule) Error() string {
	return "no module configured"
}
