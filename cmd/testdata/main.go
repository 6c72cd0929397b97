package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"pkg.jsn.cam/wordrange/cmd/testdata/generator"
	"pkg.jsn.cam/wordrange/pkg/wordrange"
)

/*generates text corpora and prints the word count a correct scan must report*/

var (
	Type       = flag.String("type", "prose", "Generator to use (see -list)")
	TotalCount = flag.Int64("count", 0, "Number of lines to generate (default: generator's suggestion)")
	OutputPath = flag.String("output", "var/testdata.txt", "Output text file path")
	Seed       = flag.Uint64("seed", 1, "Random seed")
	UserCount  = flag.Int("user_count", 100, "Number of unique users for the logs generator")
	ListTypes  = flag.Bool("list", false, "List available generators")
)

func main() {
	flag.Parse()

	if *ListTypes {
		for _, name := range generator.List() {
			gen, _ := generator.Get(name)
			fmt.Printf("%-10s %s\n", name, gen.Description())
		}
		return
	}

	generator.SetUserCount(*UserCount)

	gen, err := generator.Get(*Type)
	if err != nil {
		log.Fatal(err)
	}
	gen.Init(rand.New(rand.NewPCG(*Seed, *Seed^0x9e3779b97f4a7c15)))

	count := *TotalCount
	if count <= 0 {
		count = gen.DefaultCount()
	}

	if err := os.MkdirAll(filepath.Dir(*OutputPath), 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}
	if err := write(*OutputPath, gen, count); err != nil {
		log.Fatalf("Failed to generate %s: %v", *OutputPath, err)
	}

	size, words, err := expectedWords(*OutputPath)
	if err != nil {
		log.Fatalf("Failed to count %s: %v", *OutputPath, err)
	}

	fmt.Printf("Wrote %s lines (%s) to %s\n", humanize.Comma(count), humanize.Bytes(size), *OutputPath)
	fmt.Printf("Expected words: %d\n", words)
}

func write(path string, gen generator.Generator, count int64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriterSize(file, 1<<20)
	bar := progressbar.NewOptions64(count,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("generating "+gen.Description()),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	for range count {
		if err := gen.WriteLine(w); err != nil {
			return err
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	if err := w.Flush(); err != nil {
		return err
	}
	return file.Close()
}

// expectedWords scans the whole file as a single range.
func expectedWords(path string) (uint64, uint64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return 0, 0, err
	}
	size := uint64(info.Size())
	if size == 0 {
		return 0, 0, nil
	}

	res := wordrange.Scan(context.Background(), file, size,
		wordrange.Range{Offset: 0, Size: size}, wordrange.ScanOptions{BufferSize: 1 << 16})
	if res.Degraded {
		return size, res.Count, res.Err
	}

	return size, res.Count, nil
}
