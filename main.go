package main

import "github.com/voidrun/portsweep/cmd"

func main() {
	cmd.Execute()
}
