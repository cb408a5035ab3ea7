package main

import "github.com/dzjyyds666/aqtoml/cmd"

func main() {
	cmd.Execute()
}
