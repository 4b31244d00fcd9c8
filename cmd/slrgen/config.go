package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// config mirrors the command-line flags. A flag given explicitly always wins over the file.
//
//	strict = true
//	compress = false
//	terminals = ["+", "*", "(", ")", "id"]
//	trace = "Info"
type config struct {
	Strict    bool     `toml:"strict"`
	Compress  bool     `toml:"compress"`
	Terminals []string `toml:"terminals"`
	Trace     string   `toml:"trace"`
}

func readConfig(path string) (*config, error) {
	c := &config{}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, fmt.Errorf("Cannot read the config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("Unknown keys in the config file %s: %v", path, undecoded)
	}
	return c, nil
}
