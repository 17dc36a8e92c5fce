// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ezrec/rv32i/asm"
	"github.com/ezrec/rv32i/diag"
	"github.com/ezrec/rv32i/image"
	"github.com/ezrec/rv32i/translate"
)

func main() {
	var output string
	var format string
	var tables bool
	var verbose bool
	var lang string
	defines := map[string]string{}

	flag.StringVar(&output, "o", "-", "Image output")
	flag.StringVar(&format, "f", "hex", "Image format, hex or bin")
	flag.BoolVar(&tables, "t", false, "Dump label and symbol tables to stderr")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&lang, "lang", "", "Message language, defaults to the system locale")
	flag.Func("D", "Predefine NAME=VALUE", func(arg string) error {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || len(name) == 0 {
			return fmt.Errorf("%v: expected NAME=VALUE", arg)
		}
		defines[name] = value
		return nil
	})

	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix(os.Args[0] + ": ")

	if len(lang) != 0 {
		translate.SetLanguage(lang)
	}
	if verbose {
		log.Printf("language: %v", translate.Language())
	}

	if flag.NArg() > 1 {
		log.Fatalf("Unknown arguments: %v", flag.Args()[1:])
	}

	source := "-"
	if flag.NArg() == 1 {
		source = flag.Arg(0)
	}

	var input io.Reader = os.Stdin
	if source != "-" {
		inf, err := os.Open(source)
		if err != nil {
			log.Fatalf("%v: %v", source, err)
		}
		defer inf.Close()
		input = inf
	}

	assembler := &asm.Assembler{
		Verbose: verbose,
		Sink:    &diag.Log{Logger: log.New(os.Stderr, source+": ", 0)},
	}
	for name, value := range defines {
		assembler.Predefine(name, value)
	}

	prog, err := assembler.Parse(input)
	if err != nil {
		// Already reported through the sink.
		os.Exit(1)
	}

	if verbose {
		log.Printf("%v: text %#x bytes, data %#x bytes at %#x", source, prog.TextSize, prog.DataSize, prog.DataBase)
	}

	if tables {
		err = prog.Table.Dump(os.Stderr)
		if err != nil {
			log.Fatal(err)
		}
	}

	img, err := image.Build(prog.Table)
	if err != nil {
		os.Exit(1)
	}

	var ouf io.Writer = os.Stdout
	if output == "-" && format == "bin" && term.IsTerminal(int(os.Stdout.Fd())) {
		log.Fatalf("not writing a binary image to a terminal, use -o")
	}
	if output != "-" {
		file, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer file.Close()
		ouf = file
	}

	err = img.Write(ouf, format)
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}
}
