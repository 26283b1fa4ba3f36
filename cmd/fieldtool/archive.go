package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/whodaresx/ff7-ultima/pkg/lgp"
	"github.com/whodaresx/ff7-ultima/pkg/lzs"
)

// cmdArchive groups the LGP archive subcommands.
func cmdArchive(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: fieldtool archive <info|list|extract|search> <file.lgp> ...")
		os.Exit(1)
	}

	switch args[0] {
	case "info":
		archiveInfo(args[1:])
	case "list", "ls":
		archiveList(args[1:])
	case "extract", "x":
		archiveExtract(args[1:])
	case "search", "find":
		archiveSearch(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown archive command: %s\n", args[0])
		os.Exit(1)
	}
}

func openArchive(path string) *lgp.Archive {
	archive, err := lgp.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return archive
}

func archiveInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: fieldtool archive info <file.lgp>")
		os.Exit(1)
	}

	archive := openArchive(args[0])
	defer archive.Close()

	files := archive.List()

	// Count by extension
	extCount := make(map[string]int)
	var totalSize uint64
	for _, f := range files {
		ext := strings.ToLower(filepath.Ext(f))
		if ext == "" {
			ext = "(no ext)"
		}
		extCount[ext]++
		if entry := archive.Stat(f); entry != nil {
			totalSize += uint64(entry.Size)
		}
	}

	fmt.Printf("Archive: %s\n", args[0])
	fmt.Printf("Files:   %d\n", len(files))
	fmt.Printf("Size:    %.2f MB\n", float64(totalSize)/(1024*1024))
	fmt.Println()
	fmt.Println("Files by type:")

	// Sort by count
	type extStat struct {
		ext   string
		count int
	}
	var stats []extStat
	for ext, count := range extCount {
		stats = append(stats, extStat{ext, count})
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].count > stats[j].count
	})

	for _, s := range stats {
		fmt.Printf("  %-10s %d\n", s.ext, s.count)
	}
}

func archiveList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	limit := fs.Int("n", 0, "Limit output to N files (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: fieldtool archive list <file.lgp> [pattern]")
		os.Exit(1)
	}

	archive := openArchive(fs.Arg(0))
	defer archive.Close()

	files := archive.List()
	sort.Strings(files)

	pattern := ""
	if fs.NArg() > 1 {
		pattern = strings.ToLower(fs.Arg(1))
	}

	count := 0
	for _, f := range files {
		if pattern != "" {
			matched, _ := filepath.Match(pattern, f)
			if !matched && !strings.Contains(f, pattern) {
				continue
			}
		}
		fmt.Println(f)
		count++
		if *limit > 0 && count >= *limit {
			break
		}
	}

	if pattern != "" {
		fmt.Fprintf(os.Stderr, "\n(%d files matched)\n", count)
	}
}

func archiveExtract(args []string) {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	raw := fs.Bool("raw", false, "Write stored bytes without LZS decompression")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: fieldtool archive extract <file.lgp> <name> [output_dir]")
		os.Exit(1)
	}

	lgpPath := fs.Arg(0)
	name := fs.Arg(1)
	outputDir := "."
	if fs.NArg() > 2 {
		outputDir = fs.Arg(2)
	}

	archive := openArchive(lgpPath)
	defer archive.Close()

	// Check if it's a pattern
	if strings.Contains(name, "*") {
		extractPattern(archive, name, outputDir, *raw)
		return
	}

	if !archive.Contains(name) {
		fmt.Fprintf(os.Stderr, "File not found: %s\n", name)
		os.Exit(1)
	}

	data, stored, err := readEntry(archive, name, *raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	outputPath := filepath.Join(outputDir, filepath.Base(name))
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	if len(data) != stored {
		fmt.Printf("Extracted: %s (%d bytes, %d stored)\n", outputPath, len(data), stored)
	} else {
		fmt.Printf("Extracted: %s (%d bytes)\n", outputPath, len(data))
	}
}

func extractPattern(archive *lgp.Archive, pattern, outputDir string, raw bool) {
	files := archive.List()
	pattern = strings.ToLower(pattern)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
		os.Exit(1)
	}

	extracted := 0
	for _, f := range files {
		matched, _ := filepath.Match(pattern, f)
		if !matched {
			continue
		}

		data, _, err := readEntry(archive, f, raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", f, err)
			continue
		}

		outputPath := filepath.Join(outputDir, f)
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outputPath, err)
			continue
		}

		fmt.Printf("Extracted: %s\n", outputPath)
		extracted++
	}

	fmt.Fprintf(os.Stderr, "\nExtracted %d files\n", extracted)
}

// readEntry reads an archive entry, expanding LZS compression unless
// raw output was requested. Returns the data and the stored size.
func readEntry(archive *lgp.Archive, name string, raw bool) ([]byte, int, error) {
	data, err := archive.Read(name)
	if err != nil {
		return nil, 0, err
	}
	stored := len(data)

	if !raw && lzs.Compressed(data) {
		expanded, err := lzs.Decompress(data)
		if err != nil {
			return nil, 0, fmt.Errorf("decompressing %s: %w", name, err)
		}
		return expanded, stored, nil
	}

	return data, stored, nil
}

func archiveSearch(args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	limit := fs.Int("n", 50, "Limit results (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: fieldtool archive search <file.lgp> <pattern>")
		os.Exit(1)
	}

	archive := openArchive(fs.Arg(0))
	defer archive.Close()

	files := archive.List()
	sort.Strings(files)
	pattern := strings.ToLower(fs.Arg(1))

	count := 0
	for _, f := range files {
		if strings.Contains(f, pattern) {
			fmt.Println(f)
			count++
			if *limit > 0 && count >= *limit {
				fmt.Fprintf(os.Stderr, "\n(showing first %d matches, use -n 0 for all)\n", *limit)
				break
			}
		}
	}

	if count == 0 {
		fmt.Fprintln(os.Stderr, "No files found")
	} else if *limit == 0 || count < *limit {
		fmt.Fprintf(os.Stderr, "\n(%d files found)\n", count)
	}
}
