// Package lgp provides reading functionality for Final Fantasy VII LGP archives.
package lgp

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	lgpCreator = "SQUARESOFT"

	headerSize   = 16 // 12-byte creator tag + uint32 entry count
	tocEntrySize = 27
	recordPrefix = 24 // 20-byte name + uint32 length before each file's data

	// maxEntries is a sanity ceiling on the entry count. The largest
	// retail archive holds under a thousand files.
	maxEntries = 65536
)

// Archive represents an opened LGP archive.
type Archive struct {
	file    *os.File
	entries map[string]*Entry
}

// header mirrors the on-disk archive header: the creator tag is
// "SQUARESOFT" right-aligned in 12 bytes.
type header struct {
	Creator [12]byte
	Count   uint32
}

// tocEntry mirrors one on-disk 27-byte table-of-contents record.
type tocEntry struct {
	Name     [20]byte
	Offset   uint32
	Check    uint8
	Conflict uint16
}

// Entry represents a file entry in the archive.
type Entry struct {
	Name   string
	Offset uint32 // absolute offset of the data record
	Size   uint32 // file length in bytes
}

// Open opens an LGP archive for reading.
func Open(path string) (*Archive, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	archive := &Archive{
		file:    file,
		entries: make(map[string]*Entry),
	}

	if err := archive.readTOC(); err != nil {
		file.Close()
		return nil, fmt.Errorf("reading archive table: %w", err)
	}

	return archive, nil
}

// Close closes the archive.
func (a *Archive) Close() error {
	if a.file != nil {
		return a.file.Close()
	}
	return nil
}

func (a *Archive) readTOC() error {
	if _, err := a.file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	var hdr header
	if err := binary.Read(a.file, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("reading header: %w", err)
	}

	if !strings.Contains(string(hdr.Creator[:]), lgpCreator) {
		return fmt.Errorf("invalid LGP creator tag")
	}
	if hdr.Count > maxEntries {
		return fmt.Errorf("implausible entry count: %d", hdr.Count)
	}

	for i := uint32(0); i < hdr.Count; i++ {
		var toc tocEntry
		if err := binary.Read(a.file, binary.LittleEndian, &toc); err != nil {
			return fmt.Errorf("reading TOC entry %d: %w", i, err)
		}

		entry := &Entry{
			Name:   normalizeName(string(bytes.TrimRight(toc.Name[:], "\x00"))),
			Offset: toc.Offset,
		}

		// The data record repeats the name and carries the length;
		// only the length matters here.
		var prefix [recordPrefix]byte
		if _, err := a.file.ReadAt(prefix[:], int64(entry.Offset)); err != nil {
			return fmt.Errorf("reading record for %s: %w", entry.Name, err)
		}
		entry.Size = binary.LittleEndian.Uint32(prefix[20:])

		a.entries[entry.Name] = entry
	}

	return nil
}

// Count returns the number of files in the archive.
func (a *Archive) Count() int {
	return len(a.entries)
}

// List returns all file names in the archive.
func (a *Archive) List() []string {
	result := make([]string, 0, len(a.entries))
	for name := range a.entries {
		result = append(result, name)
	}
	return result
}

// Contains checks if a file exists.
func (a *Archive) Contains(name string) bool {
	_, ok := a.entries[normalizeName(name)]
	return ok
}

// Stat returns the entry for a file, or nil when it does not exist.
func (a *Archive) Stat(name string) *Entry {
	return a.entries[normalizeName(name)]
}

// Read reads a file from the archive.
func (a *Archive) Read(name string) ([]byte, error) {
	entry, ok := a.entries[normalizeName(name)]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", name)
	}

	data := make([]byte, entry.Size)
	if _, err := a.file.ReadAt(data, int64(entry.Offset)+recordPrefix); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// normalizeName lowercases a file name; archive lookups are
// case-insensitive.
func normalizeName(name string) string {
	return strings.ToLower(name)
}
