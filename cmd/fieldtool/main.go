// fieldtool is a CLI utility for inspecting Final Fantasy VII field maps.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/whodaresx/ff7-ultima/internal/config"
	"github.com/whodaresx/ff7-ultima/internal/logger"
)

func main() {
	// Global flags come before the subcommand
	config.ParseFlags()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "info":
		cmdInfo(cfg, args)
	case "tris":
		cmdTris(cfg, args)
	case "gateways", "gw":
		cmdGateways(cfg, args)
	case "bounds":
		cmdBounds(cfg, args)
	case "locate":
		cmdLocate(cfg, args)
	case "path":
		cmdPath(cfg, args)
	case "preview":
		cmdPreview(cfg, args)
	case "archive", "ar":
		cmdArchive(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`fieldtool - Final Fantasy VII field map utility

Usage:
  fieldtool [options] <command> [args]

Commands:
  info <field>                 Show walkmesh and gateway summary
  tris <field> [-n N]          List triangles with their access links
  gateways <field>             List gateway exit lines
  bounds <field>               Show the walkmesh bounding box
  locate <field> <x> <y>       Find the triangle under a point
  path <field> <from> <to>     Find a triangle route between two indices
  preview <field> [-o file]    Render a top-down PNG preview
  archive <cmd> <file.lgp>     Inspect or extract LGP archives

Archive commands:
  archive info <file.lgp>                    Show archive information
  archive list <file.lgp> [pattern]          List files (optional glob pattern)
  archive extract <file.lgp> <name> [dir]    Extract file(s), expanding LZS
  archive search <file.lgp> <pattern>        Search files by name pattern

Options:
  -fields <dir>    Directory with extracted field sections
  -config <file>   Config file path
  -debug           Enable debug logging

Examples:
  fieldtool -fields ./flevel info md1_1
  fieldtool locate md1_1 -204 312
  fieldtool path md1_1 0 42
  fieldtool preview md1_1 -o md1_1.png
  fieldtool archive extract flevel.lgp md1_1 ./flevel`)
}

// walkmeshPath resolves a field argument to its walkmesh section file.
// A path that exists is used as given; a bare name looks in the
// configured field directory.
func walkmeshPath(cfg *config.Config, name string) string {
	if _, err := os.Stat(name); err == nil {
		return name
	}
	return filepath.Join(cfg.Data.FieldDir, name+".wm")
}

// triggerPath resolves a field argument to its trigger section file.
func triggerPath(cfg *config.Config, name string) string {
	if _, err := os.Stat(name); err == nil {
		return name
	}
	return filepath.Join(cfg.Data.FieldDir, name+".trig")
}

// fieldName strips directory and extension from a field argument, for
// output file naming.
func fieldName(arg string) string {
	base := filepath.Base(arg)
	if ext := filepath.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	return base
}
