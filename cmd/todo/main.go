package main

import (
	"os"

	"github.com/adanyl0v/go-todo-board/internal/app"
)

func main() {
	app.InitDefaultLogger()
	os.Exit(app.Execute())
}
