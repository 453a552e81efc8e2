package main

import "github.com/yogeshkerkar48/Phonebook-Application/cmd/phonebook/cmd"

func main() {
	cmd.Execute()
}
