package main

import (
	"context"
	"fmt"
)

// version é definido no build com -ldflags "-X main.version=..."
var version = "dev"

type VersionCommand struct {
}

func (c VersionCommand) Run(ctx context.Context) (err error) {
	fmt.Println(version)
	return nil
}
