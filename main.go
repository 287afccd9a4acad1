package main

import "github.com/libshelf/apiserver/cmd"

func main() {
	cmd.Execute()
}
