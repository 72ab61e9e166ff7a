package main

import (
	"flag"
	"fmt"
	"os"

	"mobility-urdf/internal/convert"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: upgrade <asset_dir>...")
		fmt.Fprintln(os.Stderr, "Writes mobility_v3.json from result.json and mobility_v2.json.")
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	failed := 0
	for _, dir := range flag.Args() {
		path, err := convert.Upgrade(dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", dir, err)
			failed++
			continue
		}
		fmt.Printf("wrote %s\n", path)
	}
	if failed > 0 {
		os.Exit(1)
	}
}
