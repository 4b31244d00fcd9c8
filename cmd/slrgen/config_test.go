package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestReadConfig(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		config  *config
		err     bool
	}{
		{
			caption: "every key",
			src: `
strict = true
compress = true
terminals = ["+", "id"]
trace = "Debug"
`,
			config: &config{
				Strict:    true,
				Compress:  true,
				Terminals: []string{"+", "id"},
				Trace:     "Debug",
			},
		},
		{
			caption: "missing keys keep their zero values",
			src:     `compress = true`,
			config: &config{
				Compress: true,
			},
		},
		{
			caption: "an unknown key",
			src:     `precedence = "left"`,
			err:     true,
		},
		{
			caption: "a malformed file",
			src:     `strict = `,
			err:     true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "slrgen.toml")
			err := os.WriteFile(path, []byte(tt.src), 0600)
			if err != nil {
				t.Fatal(err)
			}

			c, err := readConfig(path)
			if tt.err {
				if err == nil {
					t.Fatalf("an error must occur")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(c, tt.config) {
				t.Fatalf("unexpected config; want: %+v, got: %+v", tt.config, c)
			}
		})
	}
}
