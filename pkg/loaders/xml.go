package loaders

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// XMLElement is one element of a scene document. Nesting is discarded; only
// document order matters.
type XMLElement struct {
	Name  string            // Local tag name
	Attrs map[string]string // Attribute values by local name
	Line  int               // Line of the opening tag
}

// ParseXML reads every element of an XML document in document order
func ParseXML(reader io.Reader) ([]XMLElement, error) {
	decoder := xml.NewDecoder(reader)
	elements := make([]XMLElement, 0)

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse XML: %w", err)
		}

		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}

		line, _ := decoder.InputPos()
		element := XMLElement{
			Name:  start.Name.Local,
			Attrs: make(map[string]string, len(start.Attr)),
			Line:  line,
		}
		for _, attr := range start.Attr {
			element.Attrs[attr.Name.Local] = attr.Value
		}
		elements = append(elements, element)
	}

	if len(elements) == 0 {
		return nil, fmt.Errorf("failed to parse XML: document has no elements")
	}

	return elements, nil
}

// GetString returns a raw attribute value
func (e XMLElement) GetString(name string) (string, bool) {
	value, ok := e.Attrs[name]
	return value, ok
}

// GetFloat parses a real-valued attribute. The bool reports presence.
func (e XMLElement) GetFloat(name string) (float64, bool, error) {
	value, ok := e.Attrs[name]
	if !ok {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, true, fmt.Errorf("%w: <%s> %s=%q on line %d", ErrInvalidValue, e.Name, name, value, e.Line)
	}
	return f, true, nil
}

// GetVec3 parses a "x y z" attribute of three whitespace-separated reals.
// The bool reports presence.
func (e XMLElement) GetVec3(name string) (core.Vec3, bool, error) {
	value, ok := e.Attrs[name]
	if !ok {
		return core.Vec3{}, false, nil
	}

	fields := strings.Fields(value)
	if len(fields) != 3 {
		return core.Vec3{}, true, fmt.Errorf("%w: <%s> %s=%q on line %d needs 3 numbers", ErrInvalidValue, e.Name, name, value, e.Line)
	}

	var components [3]float64
	for i, field := range fields {
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return core.Vec3{}, true, fmt.Errorf("%w: <%s> %s=%q on line %d", ErrInvalidValue, e.Name, name, value, e.Line)
		}
		components[i] = f
	}
	return core.NewVec3(components[0], components[1], components[2]), true, nil
}
