package main

import "github.com/Yates-Labs/novelist/cmd"

func main() {
	cmd.Execute()
}
