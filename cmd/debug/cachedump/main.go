// cachedump inspects results cache database produced by eqgen: lists cached
// entries, extracts results and prints element trees stored as Ion.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"eqgen/cache"
	"eqgen/cmd/debug/internal/dumputil"
)

func main() {
	all := flag.Bool("all", false, "enable all dump flags (-list, -results, -ion)")
	list := flag.Bool("list", false, "print cached entries to stdout")
	results := flag.Bool("results", false, "write cached results into <file>-results.zip")
	ionText := flag.Bool("ion", false, "dump Ion element trees into <file>-ion.txt")
	overwrite := flag.Bool("overwrite", false, "overwrite existing output")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: cachedump [-all] [-list] [-results] [-ion] [-overwrite] <cache.db> [outdir]\n\n")
		fmt.Fprintf(os.Stderr, "Reads eqgen results cache.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		os.Exit(2)
	}

	if *all {
		*list = true
		*results = true
		*ionText = true
	}

	if !*list && !*results && !*ionText {
		flag.Usage()
		os.Exit(2)
	}

	defer func(startedAt time.Time) {
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", time.Since(startedAt))
	}(time.Now())

	inPath := flag.Arg(0)
	outDir := ""
	if flag.NArg() == 2 {
		outDir = flag.Arg(1)
	}

	// Open would create an empty database
	if _, err := os.Stat(inPath); err != nil {
		fmt.Fprintf(os.Stderr, "stat %s: %v\n", inPath, err)
		os.Exit(1)
	}
	store, err := cache.Open(inPath, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open %s: %v\n", inPath, err)
		os.Exit(1)
	}
	var entries []cache.Entry
	err = store.Entries(func(e cache.Entry) error {
		entries = append(entries, e)
		return nil
	})
	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", inPath, err)
		os.Exit(1)
	}

	if *list {
		fmt.Print(dumputil.List(entries))
	}

	if *results {
		if err := dumputil.DumpResults(entries, inPath, outDir, *overwrite); err != nil {
			fmt.Fprintf(os.Stderr, "dump results: %v\n", err)
			os.Exit(1)
		}
	}

	if *ionText {
		text, err := dumputil.IonText(entries)
		if err != nil {
			fmt.Fprintf(os.Stderr, "dump ion: %v\n", err)
			os.Exit(1)
		}
		if err := dumputil.WriteOutput(inPath, outDir, "-ion.txt", []byte(text), *overwrite); err != nil {
			fmt.Fprintf(os.Stderr, "write ion: %v\n", err)
			os.Exit(1)
		}
	}
}
