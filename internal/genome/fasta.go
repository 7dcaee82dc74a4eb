package genome

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is a single FASTA sequence paired with its contig identifier.
// The sequence is normalized to uppercase on load and immutable afterwards.
type Record struct {
	ID  string
	Seq string
}

// ReadFASTA reads the first record from a FASTA file. Files ending in .gz
// are transparently decompressed. Additional records are ignored; the search
// operates on one contig at a time.
//
// Returns an error when the file cannot be opened, has no header line, or
// contains no sequence data.
func ReadFASTA(path string) (Record, error) {
	rc, err := openReader(path)
	if err != nil {
		return Record{}, err
	}
	defer rc.Close()

	return readRecord(rc, path)
}

// openReader opens a plain or gzip-compressed file for reading.
func openReader(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open gzip %s: %w", path, err)
		}
		return &gzipReadCloser{gz: gz, f: f}, nil
	}
	return f, nil
}

type gzipReadCloser struct {
	gz *gzip.Reader
	f  *os.File
}

func (g *gzipReadCloser) Read(p []byte) (int, error) { return g.gz.Read(p) }

func (g *gzipReadCloser) Close() error {
	gzErr := g.gz.Close()
	fErr := g.f.Close()
	if gzErr != nil {
		return gzErr
	}
	return fErr
}

func readRecord(r io.Reader, path string) (Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var id string
	var seq strings.Builder
	seenHeader := false

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			if seenHeader {
				break // only the first record is used
			}
			seenHeader = true
			fields := strings.Fields(line[1:])
			if len(fields) > 0 {
				id = fields[0]
			}
			continue
		}
		if !seenHeader {
			return Record{}, fmt.Errorf("%s: sequence data before FASTA header", path)
		}
		seq.WriteString(strings.ToUpper(line))
	}
	if err := sc.Err(); err != nil {
		return Record{}, fmt.Errorf("read %s: %w", path, err)
	}
	if !seenHeader {
		return Record{}, fmt.Errorf("%s: no FASTA header found", path)
	}
	if seq.Len() == 0 {
		return Record{}, fmt.Errorf("%s: record %q has no sequence data", path, id)
	}

	return Record{ID: id, Seq: seq.String()}, nil
}
