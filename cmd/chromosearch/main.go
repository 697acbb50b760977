// cmd/chromosearch/main.go
package main

import (
	"chromosearch/internal/app"
	"chromosearch/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
