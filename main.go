package main

import "github.com/nagaosooooooora-dev/roman-points/cmd"

func main() {
	cmd.Execute()
}
