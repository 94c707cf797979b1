package rlgbwt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadPaths parses one path per line of whitespace-separated node ids.
// Blank lines are skipped and '#' starts a comment.
func ReadPaths(r io.Reader) ([][]uint64, error) {
	var paths [][]uint64
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 64*1024*1024)
	for line := 1; scanner.Scan(); line++ {
		text, _, _ := strings.Cut(scanner.Text(), "#")
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		path := make([]uint64, len(fields))
		for i, f := range fields {
			node, err := strconv.ParseUint(f, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("rlgbwt: line %d: %w", line, err)
			}
			path[i] = node
		}
		paths = append(paths, path)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return paths, nil
}

// WritePaths writes paths in the format read by ReadPaths.
func WritePaths(w io.Writer, paths [][]uint64) error {
	bw := bufio.NewWriter(w)
	for _, path := range paths {
		for i, node := range path {
			if i > 0 {
				if err := bw.WriteByte(' '); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(strconv.FormatUint(node, 10)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
