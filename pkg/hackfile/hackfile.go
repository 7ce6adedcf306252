// Package hackfile moves programs between the assembler and the host file
// system: reading .asm sources, naming and writing .hack outputs, and
// reading .hack text back into words.
package hackfile

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"hackasm/pkg/asm"
)

// DefaultExt is the conventional extension for assembled output.
const DefaultExt = ".hack"

var (
	ErrFileNotFound = errors.New("file not found")
	ErrBadWord      = errors.New("malformed machine word")
)

// GetPathInfo resolves relPath to an absolute path and its parent directory.
func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}
	parentDir = filepath.Dir(fullPath)
	return fullPath, parentDir, nil
}

// ReadSource returns the text of path. A missing file is reported as
// ErrFileNotFound; the underlying fs.ErrNotExist is kept in the chain.
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
		}
		return "", err
	}
	return string(data), nil
}

// OutputPath replaces the extension of inPath with ext (DefaultExt when
// empty). A path without an extension gets ext appended.
func OutputPath(inPath, ext string) string {
	if ext == "" {
		ext = DefaultExt
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	old := filepath.Ext(inPath)
	if old == "" {
		return inPath + ext
	}
	return strings.TrimSuffix(inPath, old) + ext
}

// WriteProgram writes prog to path as .hack text, one word per line.
func WriteProgram(path string, prog *asm.Program) error {
	return os.WriteFile(path, []byte(prog.String()), 0o644)
}

// ParseHack reads .hack text back into words. Blank lines are skipped;
// anything else must be exactly 16 binary digits.
func ParseHack(text string) ([]uint16, error) {
	var words []uint16
	sc := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if len(line) != 16 {
			return nil, fmt.Errorf("%w on line %d: %q", ErrBadWord, lineNo, line)
		}
		v, err := strconv.ParseUint(line, 2, 16)
		if err != nil {
			return nil, fmt.Errorf("%w on line %d: %q", ErrBadWord, lineNo, line)
		}
		words = append(words, uint16(v))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// ReadHack reads and parses a .hack file.
func ReadHack(path string) ([]uint16, error) {
	text, err := ReadSource(path)
	if err != nil {
		return nil, err
	}
	return ParseHack(text)
}
