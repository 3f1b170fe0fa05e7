// Command gen generates small synthetic fixture streams (T42, VBI, ANC)
// for exercising the decoders and the formatio pipeline by hand, without
// needing a real broadcast capture on disk.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/zsiec/ttxcodec/internal/testutil"
)

func main() {
	formatFlag := flag.String("format", "t42", "fixture format to generate: t42, vbi, anc")
	outFlag := flag.String("out", "", "output file path (required)")
	linesFlag := flag.Int("lines", 50, "number of lines to generate")
	magazineFlag := flag.Int("magazine", 1, "magazine number (1-8) stamped on each line")
	rowFlag := flag.Int("row", 1, "row number used for the anc format (t42/vbi cycle rows 0-23)")
	textFlag := flag.String("text", "HELLO WORLD", "display text repeated into each generated row")
	flag.Parse()

	if *outFlag == "" {
		fatal("missing required -out flag")
	}

	var data []byte
	var err error
	switch *formatFlag {
	case "t42":
		data = testutil.BuildT42Stream(*linesFlag, *magazineFlag, *textFlag)
	case "vbi":
		data, err = testutil.BuildVBIStream(*linesFlag, *magazineFlag, *textFlag)
	case "anc":
		data = testutil.BuildANCStream(*linesFlag, *magazineFlag, *rowFlag, *textFlag)
	default:
		fatal("unknown -format %q (want t42, vbi, or anc)", *formatFlag)
	}
	if err != nil {
		fatal("generate %s: %v", *formatFlag, err)
	}

	if err := os.WriteFile(*outFlag, data, 0o644); err != nil {
		fatal("write %s: %v", *outFlag, err)
	}
	fmt.Printf("wrote %d bytes to %s\n", len(data), *outFlag)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "gen: "+format+"\n", args...)
	os.Exit(1)
}
