package main

import "product-api/cmd/api/commands"

func main() {
	commands.Execute()
}
