package main

import "github.com/scaleapp/backend/cmd"

func main() {
	cmd.Execute()
}
