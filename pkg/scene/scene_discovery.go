package scene

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo describes a scene that can be rendered
type SceneInfo struct {
	ID          string // Name passed to -scene
	Name        string
	Description string
	Type        string // "builtin" or "xml"
	FilePath    string // Scene file (xml type only)
}

// ErrUnknownScene is returned for a scene name that is neither built in nor a file
var ErrUnknownScene = errors.New("unknown scene")

var builtinScenes = []SceneInfo{
	{ID: "ground", Name: "Ground", Description: "Ground sphere only, camera looking along -z", Type: "builtin"},
	{ID: "default", Name: "Three Spheres", Description: "Glass, diffuse and metal spheres on the ground", Type: "builtin"},
	{ID: "random", Name: "Random Spheres", Description: "Cover scene with a seeded field of small spheres", Type: "builtin"},
	{ID: "spheregrid", Name: "Sphere Grid", Description: "20x20 grid of colored metal spheres", Type: "builtin"},
}

// BuiltinScenes lists the scenes constructed in code
func BuiltinScenes() []SceneInfo {
	return append([]SceneInfo(nil), builtinScenes...)
}

// NewBuiltinScene constructs a built-in scene by ID. seed only affects the
// random scene layout.
func NewBuiltinScene(id string, seed int64) (*Scene, error) {
	switch id {
	case "ground":
		return NewGroundScene(), nil
	case "default":
		return NewDefaultScene(), nil
	case "random":
		return NewRandomScene(seed), nil
	case "spheregrid":
		return NewSphereGridScene(20), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
	}
}

// ListXMLScenes scans dir for .xml scene files. A missing directory yields an
// empty list.
func ListXMLScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.xml"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		info, err := ParseXMLMetadata(filePath)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// ParseXMLMetadata reads "Scene:" and "Description:" lines from the comments
// that precede the first element of a scene file
func ParseXMLMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:       filePath,
		Name:     titleCase(nameWithoutExt),
		Type:     "xml",
		FilePath: filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return info, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	decoder := xml.NewDecoder(file)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return info, nil
		}
		if err != nil {
			return info, fmt.Errorf("failed to read %s: %w", filePath, err)
		}

		switch tok := token.(type) {
		case xml.StartElement:
			return info, nil
		case xml.Comment:
			for _, line := range strings.Split(string(tok), "\n") {
				line = strings.TrimSpace(line)
				if value, ok := strings.CutPrefix(line, "Scene:"); ok {
					info.Name = strings.TrimSpace(value)
				} else if value, ok := strings.CutPrefix(line, "Description:"); ok {
					info.Description = strings.TrimSpace(value)
				}
			}
		}
	}
}

// titleCase converts a filename-style string to title case
// e.g., "three-spheres" -> "Three Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
