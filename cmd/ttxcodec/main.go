// Command ttxcodec is a thin CLI over the public formatio façade and the
// mxf package's whole-file operations: filter, convert, extract, restripe.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/zsiec/ttxcodec/format"
	"github.com/zsiec/ttxcodec/formatio"
	"github.com/zsiec/ttxcodec/mxf"
	"github.com/zsiec/ttxcodec/stl"
	"github.com/zsiec/ttxcodec/timecode"
)

func main() {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "filter":
		err = runFilter(os.Args[2:])
	case "convert":
		err = runConvert(os.Args[2:])
	case "extract":
		err = runExtract(os.Args[2:])
	case "restripe":
		err = runRestripe(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		slog.Error("ttxcodec failed", "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: ttxcodec <filter|convert|extract|restripe> [flags]")
}

// runFilter reads -in, applies a magazine/row filter, and writes the
// matching lines back out unconverted.
func runFilter(args []string) error {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	in := fs.String("in", "", "input file path")
	out := fs.String("out", "", "output file path")
	mag := fs.Int("mag", 0, "magazine to keep (0 = no filter)")
	rows := fs.String("rows", "", "comma-separated row numbers to keep (empty = all)")
	fs.Parse(args)

	p, err := formatio.Open(*in)
	if err != nil {
		return err
	}
	p.Filter(*mag, parseRows(*rows))
	n, err := p.SaveTo(*out, formatio.SaveOptions{})
	if err != nil {
		return err
	}
	slog.Info("filter complete", "lines", n, "out", *out)
	return nil
}

// runConvert reads -in, optionally filters, converts to -to, and writes
// -out. STL output honours -merge/-gsi-country/-gsi-publisher/-date.
func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	in := fs.String("in", "", "input file path")
	out := fs.String("out", "", "output file path")
	to := fs.String("to", "", "target format: vbi, vbid, t42, rcwt, stl")
	mag := fs.Int("mag", 0, "magazine to keep (0 = no filter)")
	rows := fs.String("rows", "", "comma-separated row numbers to keep (empty = all)")
	merge := fs.Bool("merge", false, "enable STL intelligent merge")
	country := fs.String("gsi-country", "", "STL GSI country of origin code")
	publisher := fs.String("gsi-publisher", "", "STL GSI publisher")
	date := fs.String("date", "", "STL GSI yymmdd creation date")
	fs.Parse(args)

	tag, err := parseTag(*to)
	if err != nil {
		return err
	}

	p, err := formatio.Open(*in)
	if err != nil {
		return err
	}
	p.Filter(*mag, parseRows(*rows)).ConvertTo(tag)

	n, err := p.SaveTo(*out, formatio.SaveOptions{
		Merge: *merge,
		GSI:   stl.Options{Country: *country, Publisher: *publisher},
		Date:  *date,
	})
	if err != nil {
		return err
	}
	slog.Info("convert complete", "units", n, "out", *out)
	return nil
}

// runExtract splits an MXF file into one output per essence/data key type
// found in it.
func runExtract(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	in := fs.String("in", "", "input MXF file path")
	outDir := fs.String("out-dir", ".", "output directory")
	base := fs.String("base", "stream", "output base file name")
	fs.Parse(args)

	f, err := os.Open(*in)
	if err != nil {
		return err
	}
	defer f.Close()

	return mxf.Extract(f, mxf.Options{OutDir: *outDir, BaseName: *base})
}

// runRestripe rewrites every timecode in an MXF file in place so the
// timeline begins at -start (HH:MM:SS:FF).
func runRestripe(args []string) error {
	fs := flag.NewFlagSet("restripe", flag.ExitOnError)
	in := fs.String("in", "", "MXF file path to rewrite in place")
	start := fs.String("start", "00:00:00:00", "new start timecode (HH:MM:SS:FF)")
	timebase := fs.Int("timebase", 25, "timecode timebase (frames per second)")
	dropFrame := fs.Bool("drop-frame", false, "interpret -start as drop-frame")
	fs.Parse(args)

	tc, err := parseTimecode(*start, *timebase, *dropFrame)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(*in, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	defer f.Close()

	return mxf.Restripe(f, tc, mxf.Options{})
}

func parseRows(s string) map[int]bool {
	if s == "" {
		return nil
	}
	out := make(map[int]bool)
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err == nil {
			out[n] = true
		}
	}
	return out
}

func parseTag(s string) (format.Tag, error) {
	switch strings.ToLower(s) {
	case "vbi":
		return format.VBI, nil
	case "vbid", "vbi_double":
		return format.VBIDouble, nil
	case "t42":
		return format.T42, nil
	case "rcwt":
		return format.RCWT, nil
	case "stl":
		return format.STL, nil
	default:
		return format.Unknown, fmt.Errorf("ttxcodec: unknown -to target %q", s)
	}
}

func parseTimecode(s string, timebase int, dropFrame bool) (timecode.Timecode, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 4 {
		return timecode.Timecode{}, fmt.Errorf("ttxcodec: -start must be HH:MM:SS:FF, got %q", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return timecode.Timecode{}, fmt.Errorf("ttxcodec: -start must be HH:MM:SS:FF, got %q", s)
		}
		vals[i] = n
	}
	return timecode.New(vals[0], vals[1], vals[2], vals[3], timebase, dropFrame), nil
}
