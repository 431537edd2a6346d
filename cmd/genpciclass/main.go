// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Command genpciclass regenerates pciclass's checked-in class tree from a
// live pci.ids database. It reads the file named by -pci-ids (default
// /usr/share/hwdata/pci.ids) and prints a Go source file defining
// classTable to stdout.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"github.com/dswarbrick/vfionvme/pciids"
)

func main() {
	var idsPath string
	flag.StringVar(&idsPath, "pci-ids", "/usr/share/hwdata/pci.ids", "path to pci.ids database")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	data, err := os.ReadFile(idsPath)
	if err != nil {
		logger.Error("reading pci.ids", "path", idsPath, "error", err)
		os.Exit(1)
	}

	ids, err := pciids.Parse(data)
	if err != nil {
		logger.Error("parsing pci.ids", "path", idsPath, "error", err)
		os.Exit(1)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	generate(w, ids)
}

// seenNames de-duplicates sanitized identifiers within one emission scope,
// the Go analogue of the generator's per-scope collision check.
type seenNames map[string]bool

func (s seenNames) unique(id uint8, name string) string {
	ident := sanitize(name)
	if ident == "" {
		ident = fmt.Sprintf("Class%02X", id)
	}
	if s[ident] {
		ident = fmt.Sprintf("%s_%02X", ident, id)
	}
	s[ident] = true
	return ident
}

// sanitize turns a pci.ids name into a CamelCase Go identifier: split on
// every non-alphanumeric codepoint, drop empty fragments, upper-case each
// fragment's first codepoint, concatenate; prepend "_" if the result
// starts with a digit.
func sanitize(input string) string {
	var b strings.Builder
	for _, frag := range strings.FieldsFunc(input, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		runes := []rune(frag)
		b.WriteRune(unicode.ToUpper(runes[0]))
		b.WriteString(string(runes[1:]))
	}
	out := b.String()
	if out == "" {
		return out
	}
	if unicode.IsDigit(rune(out[0])) {
		out = "_" + out
	}
	return out
}

func generate(w *bufio.Writer, ids *pciids.PciIds) {
	fmt.Fprintln(w, "// Code generated by cmd/genpciclass. DO NOT EDIT.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "package pciclass")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "var classTable = []ClassDef{")

	classNames := seenNames{}
	for _, c := range ids.Classes {
		classIdent := classNames.unique(c.ID, c.Name)
		fmt.Fprintf(w, "\t// %s\n", classIdent)
		fmt.Fprintf(w, "\t{ID: 0x%02X, Name: %q", c.ID, c.Name)
		if len(c.SubClasses) == 0 {
			fmt.Fprintln(w, "},")
			continue
		}
		fmt.Fprintln(w, ", Subclasses: []Subclass{")

		scNames := seenNames{}
		for _, sc := range c.SubClasses {
			scIdent := scNames.unique(sc.ID, sc.Name)
			fmt.Fprintf(w, "\t\t// %s%sSubtype\n", classIdent, scIdent)
			fmt.Fprintf(w, "\t\t{ID: 0x%02X, Name: %q", sc.ID, sc.Name)
			if len(sc.ProgIfs) == 0 {
				fmt.Fprintln(w, "},")
				continue
			}
			fmt.Fprintln(w, ", ProgIfs: []ProgIf{")

			piNames := seenNames{}
			for _, pi := range sc.ProgIfs {
				piIdent := piNames.unique(pi.ID, pi.Name)
				fmt.Fprintf(w, "\t\t\t// %s%s%sProgIf\n", classIdent, scIdent, piIdent)
				fmt.Fprintf(w, "\t\t\t{ID: 0x%02X, Name: %q},\n", pi.ID, pi.Name)
			}
			fmt.Fprintln(w, "\t\t}},")
		}
		fmt.Fprintln(w, "\t}},")
	}

	fmt.Fprintln(w, "}")
}
