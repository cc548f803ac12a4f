package main

import "github.com/strrl/cleantime/internal/cmd"

func main() {
	cmd.Execute()
}
