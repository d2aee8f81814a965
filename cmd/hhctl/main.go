package main

import (
	"github.com/highwayhustle/backend/internal/cli"
)

func main() {
	cli.Execute()
}
