// Command cic scans or parses a single C translation unit and reports
// diagnostics, mirroring the teacher's small flag-based debugging CLIs
// (legacy_cmd/main.go, legacy_cmd/langlang/main.go) rather than a full
// driver: it exists to exercise the scanner and parser end to end, not
// to build or link anything (spec §1 Non-goals).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/thelilylang/lily/cc/ci/ast"
	"github.com/thelilylang/lily/cc/ci/parser"
	"github.com/thelilylang/lily/cc/ci/scanner"
	"github.com/thelilylang/lily/cierr"
	"github.com/thelilylang/lily/standard"
)

// config is the -config=file.yaml shape: the same knobs as the flags,
// for callers that would rather not spell out a long command line.
type config struct {
	Standard string `yaml:"std"`
	Dump     string `yaml:"dump"`
}

func loadConfig(path string) (config, error) {
	var c config
	data, err := os.ReadFile(path)
	if err != nil {
		return c, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, errors.Wrap(err, "parse config")
	}
	return c, nil
}

var standardNames = map[string]standard.Standard{
	"k&r": standard.KandR, "kandr": standard.KandR,
	"c89": standard.C89, "c95": standard.C95, "c99": standard.C99,
	"c11": standard.C11, "c17": standard.C17, "c23": standard.C23,
}

func parseStandard(name string) (standard.Standard, error) {
	if name == "" {
		return standard.C17, nil
	}
	if s, ok := standardNames[strings.ToLower(name)]; ok {
		return s, nil
	}
	return standard.None, errors.Errorf("unknown standard %q", name)
}

func main() {
	var (
		stdFlag    = flag.String("std", "", "C standard to gate against: c89, c99, c11, c17 (default), c23")
		dumpFlag   = flag.String("dump", "", "What to print: tokens or ast")
		configFlag = flag.String("config", "", "Path to a YAML config overriding -std/-dump")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("usage: cic [-std=c17] [-dump=tokens|ast] [-config=cic.yaml] <file.c>")
	}
	path := flag.Arg(0)

	stdName, dump := *stdFlag, *dumpFlag
	if *configFlag != "" {
		cfg, err := loadConfig(*configFlag)
		if err != nil {
			log.Fatal(err)
		}
		if stdName == "" {
			stdName = cfg.Standard
		}
		if dump == "" {
			dump = cfg.Dump
		}
	}

	std, err := parseStandard(stdName)
	if err != nil {
		log.Fatal(err)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("can't read %s: %s", path, err)
	}

	sink := cierr.NewCounter()
	sc := scanner.New(path, src, std, sink)
	tokens, tokenDump := sc.Run(dump == "tokens")

	var decls []ast.Decl
	if dump != "tokens" {
		root := ast.NewScope(nil)
		p := parser.New(tokens, std, sink, root, sc.Interner())
		decls = p.Run()
	}

	switch dump {
	case "tokens":
		fmt.Print(tokenDump)
	case "ast", "":
		spew.Dump(decls)
	default:
		log.Fatalf("unknown -dump mode %q (want tokens or ast)", dump)
	}

	for _, d := range sink.Diagnostics {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", d.Location, d.Kind, d.Message)
	}

	if sink.CountErrors() > 0 {
		os.Exit(1)
	}
}
