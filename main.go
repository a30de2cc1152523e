package main

import "example.com/finproducts-admin/internal/interface/cli"

func main() {
	cli.Execute()
}
