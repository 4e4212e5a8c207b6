package app

import (
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

var DatadirRoot = func() string {
	home, err := homedir.Dir()
	if err != nil {
		return ".trackd"
	}
	return filepath.Join(home, ".trackd")
}()
