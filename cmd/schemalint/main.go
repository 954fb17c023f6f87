// Command schemalint compiles schema descriptor files and reports every
// schema error it finds. It exits non-zero when any descriptor fails to
// compile, which makes it suitable as a CI gate for rule/type mistakes
// that would otherwise surface when the application builds its validators.
//
//	schemalint schemas/user.yaml schemas/order.yaml
//
// Configuration comes from the environment (a .env file is honored):
//
//	SCHEMALINT_FORMAT  text (default) or json
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/caarlos0/env/v11"
	json "github.com/goccy/go-json"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/checkkit/pkg/schemafile"
)

type config struct {
	Format string `env:"SCHEMALINT_FORMAT" envDefault:"text"`
}

type report struct {
	File   string `json:"file"`
	Record string `json:"record,omitempty"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
}

func main() {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[config]()
	if err != nil {
		log.Fatalf("schemalint: %v", err)
	}
	if cfg.Format != "text" && cfg.Format != "json" {
		log.Fatalf("schemalint: unsupported format %q", cfg.Format)
	}

	files := os.Args[1:]
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: schemalint <schema.yaml> [...]")
		os.Exit(2)
	}

	reports := make([]report, 0, len(files))
	failed := false
	for _, file := range files {
		r := lint(file)
		if !r.OK {
			failed = true
		}
		reports = append(reports, r)
	}

	switch cfg.Format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			log.Fatalf("schemalint: %v", err)
		}
	default:
		for _, r := range reports {
			if r.OK {
				fmt.Printf("ok\t%s\t%s\n", r.File, r.Record)
			} else {
				fmt.Printf("fail\t%s\t%s\n", r.File, r.Error)
			}
		}
	}

	if failed {
		os.Exit(1)
	}
}

func lint(file string) report {
	doc, err := schemafile.ParseFile(file)
	if err != nil {
		return report{File: file, Error: err.Error()}
	}
	if _, err := doc.Compile(schemafile.Options{}); err != nil {
		return report{File: file, Record: doc.Record, Error: err.Error()}
	}
	return report{File: file, Record: doc.Record, OK: true}
}
