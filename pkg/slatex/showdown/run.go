package showdown

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/slatex-go/pkg/slatex/models"
	"github.com/ukaji3/slatex-go/pkg/slatex/output"
)

// Default locations under public/.
const (
	DefaultShowdownRel = "data/nfl/showdown/latest"
	DefaultClassicRel  = "data/nfl/classic/latest"
)

// Load reads the inputs of a build. Missing or empty files read as no rows.
func Load(showdownDir, classicDir string) (Inputs, error) {
	in := Inputs{
		Showdown: make(map[Position][]*models.Record, len(Positions)),
		Classic:  make(map[Position][]*models.Record, len(Positions)),
	}
	var err error
	if in.Projections, err = loadRows(filepath.Join(showdownDir, "projections.json")); err != nil {
		return in, err
	}
	for _, pos := range Positions {
		p := strings.ToLower(string(pos))
		if in.Showdown[pos], err = loadRows(filepath.Join(showdownDir, p+"_data.json")); err != nil {
			return in, err
		}
		if in.Classic[pos], err = loadRows(filepath.Join(classicDir, p+"_projections.json")); err != nil {
			return in, err
		}
	}
	return in, nil
}

func loadRows(path string) ([]*models.Record, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(strings.TrimPrefix(string(data), "\uFEFF")) == "" {
		return nil, nil
	}
	rows, _, err := output.ParseRows(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return rows, nil
}

// OutputPath returns the <pos>_projections.json path in dir.
func OutputPath(dir string, pos Position) string {
	return filepath.Join(dir, strings.ToLower(string(pos))+"_projections.json")
}

// Run builds every position from the files in showdownDir and classicDir
// and writes <pos>_projections.json into showdownDir. It returns the row
// count per position.
func Run(showdownDir, classicDir string, pretty bool) (map[Position]int, error) {
	in, err := Load(showdownDir, classicDir)
	if err != nil {
		return nil, err
	}
	built := Build(in)
	counts := make(map[Position]int, len(built))
	for _, pos := range Positions {
		if err := output.WriteJSON(OutputPath(showdownDir, pos), built[pos], pretty); err != nil {
			return counts, err
		}
		counts[pos] = len(built[pos])
	}
	return counts, nil
}
