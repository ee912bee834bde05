package main

import (
	"fmt"
	"io"
	"os"

	"github.com/b97tsk/almanac/internal/almanac"
)

func main() {
	app := &_App{}
	err := app.command().Execute()
	app.close()
	if err != nil {
		eprintln("almanac:", err)
		os.Exit(1)
	}
}

// _loadAlmanac parses the named file, or stdin when name is "-".
func _loadAlmanac(name string, stdin io.Reader) (*almanac.Almanac, error) {
	if name == "" || name == "-" {
		return almanac.Parse(stdin)
	}
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	a, err := almanac.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return a, nil
}
