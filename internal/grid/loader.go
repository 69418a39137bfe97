package grid

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gridnav/internal/ctxlog"
)

// Map file glyphs. Unknown glyphs default to traversable.
const (
	glyphTraversable = '.'
	glyphBlocked     = '@'
)

// Load reads a .map file from disk. The format carries a small header with
// "MapWidth=N" and "MapHeight=N" lines followed by a "MapData" marker and
// the row bulk, '.' for traversable cells and '@' for blocked ones.
func Load(ctx context.Context, path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map %s: %w", path, err)
	}
	defer f.Close()

	g, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse map %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Debug("map loaded",
		"path", path, "width", g.width, "height", g.height)
	return g, nil
}

// Parse decodes the .map format from r.
func Parse(r io.Reader) (*Grid, error) {
	scanner := bufio.NewScanner(r)

	width, height := 0, 0
	inHeader := true
	for inHeader && scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.Contains(line, "MapWidth"):
			v, err := strconv.Atoi(strings.TrimSpace(strings.ReplaceAll(line, "MapWidth=", "")))
			if err != nil {
				return nil, fmt.Errorf("map header: bad width %q", line)
			}
			width = v
		case strings.Contains(line, "MapHeight"):
			v, err := strconv.Atoi(strings.TrimSpace(strings.ReplaceAll(line, "MapHeight=", "")))
			if err != nil {
				return nil, fmt.Errorf("map header: bad height %q", line)
			}
			height = v
		case strings.Contains(line, "MapData"):
			inHeader = false
		}
	}
	if inHeader {
		return nil, fmt.Errorf("map header: no MapData marker")
	}
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("map header: invalid dimensions %dx%d", width, height)
	}

	cells := make([]byte, width*height)
	iter := 0
	for scanner.Scan() && iter < len(cells) {
		line := scanner.Text()
		for i := 0; i < len(line) && iter < len(cells); i++ {
			switch line[i] {
			case glyphBlocked:
				cells[iter] = 0
			default:
				// glyphTraversable and anything unknown
				cells[iter] = 1
			}
			iter++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("map data: %w", err)
	}
	if iter < len(cells) {
		return nil, fmt.Errorf("map data: short read, got %d of %d cells", iter, len(cells))
	}
	return New(width, height, cells), nil
}
