// Package shader holds the GLSL sources for the sketch's materials and
// watches them on disk for hot reload. Compilation lives in the renderer.
package shader

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Program names of the bundled shaders.
const (
	Basic = "basic"
	Ocean = "ocean"
)

//go:embed glsl/*.vert glsl/*.frag
var embedded embed.FS

// Source is the GLSL text of one program.
type Source struct {
	Vertex   string
	Fragment string
}

// Library resolves program names to GLSL sources. With an empty Dir it
// serves the bundled shaders; otherwise it reads <Dir>/<name>.vert and
// <Dir>/<name>.frag, falling back to the bundled copy when a file is absent.
type Library struct {
	Dir string
}

// Load returns the sources for the named program.
func (l Library) Load(name string) (Source, error) {
	vert, err := l.read(name + ".vert")
	if err != nil {
		return Source{}, err
	}
	frag, err := l.read(name + ".frag")
	if err != nil {
		return Source{}, err
	}
	return Source{Vertex: vert, Fragment: frag}, nil
}

func (l Library) read(file string) (string, error) {
	if l.Dir != "" {
		data, err := os.ReadFile(filepath.Join(l.Dir, file))
		if err == nil {
			return string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("read shader %s: %w", file, err)
		}
	}
	data, err := fs.ReadFile(embedded, "glsl/"+file)
	if err != nil {
		return "", fmt.Errorf("no shader named %s: %w", file, err)
	}
	return string(data), nil
}

// ProgramName maps a shader file path to its program name, reporting false
// for files that are not .vert or .frag sources.
func ProgramName(path string) (string, bool) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext != ".vert" && ext != ".frag" {
		return "", false
	}
	return strings.TrimSuffix(base, ext), true
}
