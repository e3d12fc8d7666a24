package loaders

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

var (
	// ErrMissingAttribute is returned when a required attribute is absent
	ErrMissingAttribute = errors.New("missing attribute")
	// ErrInvalidValue is returned when an attribute cannot be parsed
	ErrInvalidValue = errors.New("invalid attribute value")
	// ErrUnknownMaterial is returned for a material type other than
	// lambertian, metal or dielectric
	ErrUnknownMaterial = errors.New("unknown material type")
	// ErrMissingCamera is returned when a scene has no camera element
	ErrMissingCamera = errors.New("missing camera element")
)

// xmlSceneBuilder carries the loader state while walking the elements
type xmlSceneBuilder struct {
	scene           *scene.Scene
	logger          core.Logger
	currentMaterial material.ID
	hasCamera       bool
}

// LoadXMLScene loads and builds a scene from an XML scene file
func LoadXMLScene(filename string, logger core.Logger) (*scene.Scene, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := ReadXMLScene(file, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// ReadXMLScene builds a scene from an XML description. Elements are handled
// in document order regardless of nesting:
//
//	<film filename="out.ppm"/>
//	<camera look_from="x y z" look_at="x y z" up="x y z" aperture="a"/>
//	<material type="lambertian|metal|dielectric" color="r g b" fuzz="f" refrect_idx="n"/>
//	<object center="x y z" radius="r"/>
//
// A material element sets the material for the objects that follow it. The
// ground sphere is always the first primitive. Unknown elements are ignored.
func ReadXMLScene(reader io.Reader, logger core.Logger) (*scene.Scene, error) {
	elements, err := ParseXML(reader)
	if err != nil {
		return nil, err
	}

	b := &xmlSceneBuilder{
		scene:  scene.NewScene(scene.DefaultCameraConfig()),
		logger: logger,
	}
	b.scene.AddGround()
	// Objects before any material element are black Lambertian
	b.currentMaterial = b.scene.World.AddMaterial(material.NewLambertian(core.Vec3{}))

	for _, element := range elements {
		if err := b.handleElement(element); err != nil {
			return nil, err
		}
	}

	if !b.hasCamera {
		return nil, ErrMissingCamera
	}
	if err := b.scene.Finalize(); err != nil {
		return nil, fmt.Errorf("invalid camera: %w", err)
	}

	return b.scene, nil
}

func (b *xmlSceneBuilder) handleElement(element XMLElement) error {
	switch element.Name {
	case "film":
		return b.handleFilm(element)
	case "camera":
		return b.handleCamera(element)
	case "material":
		return b.handleMaterial(element)
	case "object":
		return b.handleObject(element)
	default:
		return nil
	}
}

func (b *xmlSceneBuilder) handleFilm(element XMLElement) error {
	filename, ok := element.GetString("filename")
	if !ok || strings.TrimSpace(filename) == "" {
		b.logger.Printf("Missing output file name in XML, using %s\n", scene.DefaultOutputName)
		b.scene.OutputName = scene.DefaultOutputName
		return nil
	}
	b.scene.OutputName = filename
	return nil
}

func (b *xmlSceneBuilder) handleCamera(element XMLElement) error {
	config := b.scene.CameraConfig

	lookFrom, err := requireVec3(element, "look_from")
	if err != nil {
		return err
	}
	lookAt, err := requireVec3(element, "look_at")
	if err != nil {
		return err
	}
	up, err := requireVec3(element, "up")
	if err != nil {
		return err
	}
	aperture, err := requireFloat(element, "aperture")
	if err != nil {
		return err
	}

	config.LookFrom = lookFrom
	config.LookAt = lookAt
	config.VUp = up
	config.Aperture = aperture

	b.scene.CameraConfig = config
	b.hasCamera = true
	return nil
}

func (b *xmlSceneBuilder) handleMaterial(element XMLElement) error {
	materialType, ok := element.GetString("type")
	if !ok {
		return missingAttribute(element, "type")
	}

	color, _, err := element.GetVec3("color")
	if err != nil {
		return err
	}

	var m material.Material
	switch materialType {
	case "lambertian":
		m = material.NewLambertian(color)
	case "metal":
		fuzz, err := requireFloat(element, "fuzz")
		if err != nil {
			return err
		}
		m = material.NewMetal(color, fuzz)
	case "dielectric":
		refractiveIndex, err := requireFloat(element, "refrect_idx")
		if err != nil {
			return err
		}
		m = material.NewDielectric(refractiveIndex)
	default:
		return fmt.Errorf("%w %q on line %d", ErrUnknownMaterial, materialType, element.Line)
	}

	b.currentMaterial = b.scene.World.AddMaterial(m)
	return nil
}

func (b *xmlSceneBuilder) handleObject(element XMLElement) error {
	center, err := requireVec3(element, "center")
	if err != nil {
		return err
	}
	radius, err := requireFloat(element, "radius")
	if err != nil {
		return err
	}

	b.scene.World.AddSphere(center, radius, b.currentMaterial)
	return nil
}

func missingAttribute(element XMLElement, name string) error {
	return fmt.Errorf("%w: <%s> needs %q (line %d)", ErrMissingAttribute, element.Name, name, element.Line)
}

func requireVec3(element XMLElement, name string) (core.Vec3, error) {
	v, ok, err := element.GetVec3(name)
	if err != nil {
		return core.Vec3{}, err
	}
	if !ok {
		return core.Vec3{}, missingAttribute(element, name)
	}
	return v, nil
}

func requireFloat(element XMLElement, name string) (float64, error) {
	f, ok, err := element.GetFloat(name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, missingAttribute(element, name)
	}
	return f, nil
}

// validateFilePath rejects paths that cannot name a scene file
func validateFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	// Check for null bytes (could indicate path manipulation)
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("invalid file path: null bytes not allowed")
	}

	if len(filename) > 512 {
		return fmt.Errorf("file path too long: maximum 512 characters allowed")
	}

	if !strings.EqualFold(filepath.Ext(filename), ".xml") {
		return fmt.Errorf("invalid file type: only .xml files are allowed")
	}

	return nil
}

// IsSceneFile reports whether name looks like a scene file path rather than
// a built-in scene name
func IsSceneFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".xml")
}

// Summary describes a loaded scene in one line
func Summary(s *scene.Scene) string {
	cfg := s.CameraConfig
	return fmt.Sprintf("%d spheres, %d materials, camera %v -> %v, output %s",
		len(s.World.Shapes()), s.World.MaterialCount(), cfg.LookFrom, cfg.LookAt, s.OutputName)
}
