package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/arloliu/rdagrid/driver"
	"github.com/arloliu/rdagrid/rdata"
)

// infoCommand prints the structure of each R data file in files.
type infoCommand struct {
	env   *env
	files *[]string
}

func addInfoCommand(app *kingpin.Application, e *env) {
	cmd := &infoCommand{env: e}
	c := app.Command("info", "Print the shape and layout of R data files.").Action(cmd.run)
	cmd.files = c.Arg("file", "The files to inspect.").Required().ExistingFiles()
}

func (cmd *infoCommand) run(*kingpin.ParseContext) error {
	var failed int
	for _, name := range *cmd.files {
		if err := cmd.printInfo(name); err != nil {
			color.New(color.FgRed).Fprintf(os.Stderr, "%s: %v\n", name, err) //nolint:errcheck
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be read", failed, len(*cmd.files))
	}

	return nil
}

func (cmd *infoCommand) printInfo(name string) error {
	header, err := readHeader(name)
	if err != nil {
		return err
	}

	d, err := cmd.env.drivers.Identify(driver.Probe{Path: name, Header: header})
	if err != nil {
		return err
	}
	ds, err := d.Open(name)
	if err != nil {
		return err
	}
	defer func() { _ = ds.Close() }()

	bold := color.New(color.Bold)
	bold.Printf("%s:\n", name) //nolint:errcheck
	fmt.Printf("\tdriver: %s\n", d.Name())
	fmt.Printf("\tshape: %d x %d, %d band(s)\n", ds.Width(), ds.Height(), ds.BandCount())

	if rds, ok := ds.(*rdata.Dataset); ok {
		fmt.Printf("\tobject: %q, %s samples\n", rds.ObjectName(), humanize.Comma(rds.ElementCount()))
		fmt.Printf("\tencoding: %s, compression: %s\n", rds.Mode(), rds.Compression())
		fmt.Printf("\tsize on disk: %s, checksum: %016x\n", humanize.Bytes(uint64(rds.Size())), rds.Checksum()) //nolint:gosec
	}

	meta := ds.Metadata()
	if meta.IsEmpty() {
		return nil
	}
	bold.Println("\tmetadata:") //nolint:errcheck
	if meta.Description != "" {
		fmt.Printf("\t\tdescription: %s\n", meta.Description)
	}
	for domain, items := range meta.Domains {
		for k, v := range items {
			fmt.Printf("\t\t%s%s=%s\n", domainPrefix(domain), k, v)
		}
	}
	for i, b := range meta.Bands {
		fmt.Printf("\t\tband %d: %s", i+1, b.Description)
		if b.NoData != nil {
			fmt.Printf(" (nodata %g)", *b.NoData)
		}
		fmt.Println()
	}

	return nil
}

func domainPrefix(domain string) string {
	if domain == "" {
		return ""
	}

	return domain + ":"
}

func readHeader(name string) ([]byte, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, driver.HeaderSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return buf[:n], nil
}
