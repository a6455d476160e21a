package spechistory

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/opencontainers/go-digest"

	"github.com/covesa/s2dm/internal/common"
	"github.com/covesa/s2dm/internal/fsutil"
	"github.com/covesa/s2dm/log"
)

// Archive stores type definitions as history/<Type>_<YYYYMMDDHHMMSS>_<id>.graphql.
type Archive struct {
	Dir         string
	Definitions map[string]string
	Logger      *slog.Logger
}

// NewArchive indexes the definitions of sdl by name. Extensions are skipped
// and the first definition of a name wins.
func NewArchive(dir, sdl string, logger *slog.Logger) (*Archive, error) {
	defs, qerr := common.ScanDefinitions(sdl)
	if qerr != nil {
		return nil, qerr
	}
	if logger == nil {
		logger = log.Discard()
	}
	a := &Archive{Dir: dir, Definitions: make(map[string]string), Logger: logger}
	for _, d := range defs {
		if d.Extension || d.Name == "" || d.Keyword == "directive" {
			continue
		}
		if _, ok := a.Definitions[d.Name]; !ok {
			a.Definitions[d.Name] = sdl[d.Start:d.End]
		}
	}
	return a, nil
}

// FileName is the archive name of the definition of typeName at id.
func FileName(typeName, id string, t time.Time) string {
	return fmt.Sprintf("%s_%s_%s.graphql", typeName, t.UTC().Format("20060102150405"), id)
}

// Save writes the definition of the type owning concept and returns its
// digest. A concept whose type is unknown is logged and yields "".
func (a *Archive) Save(concept, id string, t time.Time) (digest.Digest, error) {
	typeName, _, _ := strings.Cut(concept, ".")
	def, ok := a.Definitions[typeName]
	if !ok {
		a.Logger.Warn("could not find type definition", "type", typeName, "concept", concept)
		return "", nil
	}
	path := filepath.Join(a.Dir, FileName(typeName, id, t))
	if err := fsutil.WriteFile(path, []byte(def), 0o644); err != nil {
		return "", err
	}
	a.Logger.Debug("saved type definition", "type", typeName, "path", path)
	return digest.FromString(def), nil
}
