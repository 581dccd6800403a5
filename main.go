package main

import "github.com/Rorical/iconx/cmd"

func main() {
	cmd.Execute()
}
