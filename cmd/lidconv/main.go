// Command lidconv converts locator identifiers to IPv6 text and back.
//
//	lidconv 0000000100...          # LID -> IPv6
//	lidconv -reverse ::1           # IPv6 -> LID
//	lidconv -link <256 digits>     # registry link id -> ABM addresses
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"icnview/internal/codec"

	"github.com/charmbracelet/log"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	fset := flag.NewFlagSet("lidconv", flag.ContinueOnError)
	fset.SetOutput(out)
	reverse := fset.Bool("reverse", false, "convert IPv6 addresses to LIDs")
	link := fset.Bool("link", false, "decode 256-digit registry link ids")
	if err := fset.Parse(args); err != nil {
		return err
	}
	if fset.NArg() == 0 {
		return fmt.Errorf("usage: lidconv [-reverse|-link] value...")
	}

	for _, arg := range fset.Args() {
		var err error
		switch {
		case *link:
			err = printLink(out, arg)
		case *reverse:
			var lid string
			if lid, err = codec.IPv6ToLID(arg); err == nil {
				fmt.Fprintln(out, lid)
			}
		default:
			var addr string
			if addr, err = codec.LIDToIPv6(arg); err == nil {
				fmt.Fprintln(out, addr)
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func printLink(out io.Writer, id string) error {
	dst, src, err := codec.SplitLinkID(id)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "link %s\n", codec.CompressLinkID(id))
	for _, lane := range []struct{ name, lid string }{{"dst", dst}, {"src", src}} {
		if codec.IsZeroLID(lane.lid) {
			fmt.Fprintf(out, "  %s -\n", lane.name)
			continue
		}
		addr, err := codec.LIDToIPv6(lane.lid)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %s %s\n", lane.name, addr)
	}
	return nil
}
