// Command instrumentgen writes a logging decorator for an interface type.
//
// Given -type Pets, it finds the Pets interface in the package in the current directory and
// writes instrumentedPets, a struct that implements Pets by calling instrument.Tracer.Call with the
// method name and then forwarding to the wrapped value, plus a constructor:
//
//	func newInstrumentedPets(next Pets, loggers ldlog.Loggers) Pets
//
// Only exported methods are part of the decorator. Interfaces embedded from the same package are
// flattened.
//
// Usage:
//
//	//go:generate go run ../tools/instrumentgen -type Pets -output pets_instrumented.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	var typeName, output, dir string
	fs := flag.NewFlagSet("instrumentgen", flag.ExitOnError)
	fs.StringVar(&typeName, "type", "", "interface type to decorate")
	fs.StringVar(&output, "output", "", "output file name (default <type>_instrumented.go)")
	fs.StringVar(&dir, "dir", ".", "package directory")
	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if typeName == "" {
		fmt.Fprintln(os.Stderr, "-type is required")
		fs.Usage()
		os.Exit(2)
	}
	if output == "" {
		output = strings.ToLower(typeName) + "_instrumented.go"
	}

	pkg, err := loadPackage(dir, output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "instrumentgen: %s\n", err)
		os.Exit(1)
	}
	command := "instrumentgen " + strings.Join(os.Args[1:], " ")
	src, err := generate(pkg, typeName, command)
	if err != nil {
		fmt.Fprintf(os.Stderr, "instrumentgen: %s\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(filepath.Join(dir, output), src, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "instrumentgen: %s\n", err)
		os.Exit(1)
	}
}
