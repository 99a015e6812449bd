package readfiles

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fieldvis/fieldvis/mesh"
)

// Abaqus element type tags map to topologies by prefix, so variants like
// C3D8R or S4R resolve to their base shape.
func abaqusElementType(tag string) (mesh.ElementType, bool) {
	t := strings.ToUpper(strings.TrimSpace(tag))
	switch {
	case strings.HasPrefix(t, "C3D4"):
		return mesh.Tet4, true
	case strings.HasPrefix(t, "C3D8"):
		return mesh.Hex8, true
	case strings.HasPrefix(t, "C3D6"):
		return mesh.Wedge6, true
	case hasAnyPrefix(t, "CPS4", "CPE4", "S4", "CAX4"):
		return mesh.Quad4, true
	case hasAnyPrefix(t, "CPS3", "CPE3", "S3", "CAX3"):
		return mesh.Tri3, true
	}
	return 0, false
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

type inpSection int

const (
	sectionNone inpSection = iota
	sectionNodes
	sectionElements
	sectionIgnored
)

// ReadInpMesh reads a keyword-sectioned Abaqus-style mesh description:
// a *Node section with "id, x, y[, z]" lines and *Element sections tagged
// with "type=". Keyword case and spacing variants are equivalent, section
// order is free. Non-element keyword sections (node sets, surfaces,
// boundary definitions) carry nothing the field display needs and are
// skipped. An unrecognized *Element type is an error, not a guess.
func ReadInpMesh(filename string, verbose bool) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var (
		nodes    []mesh.Node
		elements []mesh.Element
		section  = sectionNone
		elType   mesh.ElementType
		scanner  = bufio.NewScanner(file)
		lineNo   int
	)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "**") {
			continue
		}
		if strings.HasPrefix(line, "*") {
			keyword, params := parseKeywordLine(line)
			switch keyword {
			case "node":
				section = sectionNodes
			case "element":
				tag, ok := params["type"]
				if !ok {
					return nil, parseErr(filename, lineNo, 0,
						"*Element section without type parameter")
				}
				elType, ok = abaqusElementType(tag)
				if !ok {
					return nil, parseErr(filename, lineNo, 0,
						"%w: %s", mesh.ErrUnsupportedElementType, tag)
				}
				section = sectionElements
			default:
				section = sectionIgnored
			}
			continue
		}
		switch section {
		case sectionNodes:
			nd, err := parseNodeLine(line)
			if err != nil {
				return nil, parseErr(filename, lineNo, 0, "node line: %v", err)
			}
			nodes = append(nodes, nd)
		case sectionElements:
			el, err := parseElementLine(line, elType)
			if err != nil {
				return nil, parseErr(filename, lineNo, 0, "element line: %v", err)
			}
			elements = append(elements, el)
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, parseErr(filename, 0, 0, "no *Node section found")
	}

	m, err := mesh.NewMesh(nodes, elements)
	if err != nil {
		return nil, &ParseError{File: filename, Err: err}
	}
	if verbose {
		min, max := m.BoundingBox()
		fmt.Printf("Read %s: %d nodes, %d elements\n", filename, m.NumNodes(), m.NumElements())
		fmt.Printf("Bounding Box:\nXMin/XMax = %5.3f, %5.3f\nYMin/YMax = %5.3f, %5.3f\nZMin/ZMax = %5.3f, %5.3f\n",
			min[0], max[0], min[1], max[1], min[2], max[2])
	}
	return m, nil
}

// parseKeywordLine splits "*Element, type=C3D4, elset=..." into the
// lower-cased keyword and its parameter map
func parseKeywordLine(line string) (keyword string, params map[string]string) {
	parts := strings.Split(line[1:], ",")
	keyword = strings.ToLower(strings.TrimSpace(parts[0]))
	params = make(map[string]string, len(parts)-1)
	for _, p := range parts[1:] {
		kv := strings.SplitN(p, "=", 2)
		key := strings.ToLower(strings.TrimSpace(kv[0]))
		if len(kv) == 2 {
			params[key] = strings.TrimSpace(kv[1])
		} else {
			params[key] = ""
		}
	}
	return
}

func parseNodeLine(line string) (nd mesh.Node, err error) {
	parts := splitCommaFields(line)
	if len(parts) < 3 {
		return nd, fmt.Errorf("need id and at least two coordinates, got %d fields", len(parts))
	}
	if nd.ID, err = strconv.Atoi(parts[0]); err != nil {
		return nd, fmt.Errorf("bad node id %q", parts[0])
	}
	coords := make([]float64, 0, 3)
	for _, p := range parts[1:] {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nd, fmt.Errorf("bad coordinate %q", p)
		}
		coords = append(coords, v)
	}
	nd.X, nd.Y = coords[0], coords[1]
	if len(coords) > 2 {
		nd.Z = coords[2]
	}
	return nd, nil
}

func parseElementLine(line string, typ mesh.ElementType) (el mesh.Element, err error) {
	parts := splitCommaFields(line)
	if len(parts) != 1+typ.NodeCount() {
		return el, fmt.Errorf("%s connectivity needs %d nodes, got %d fields",
			typ, typ.NodeCount(), len(parts)-1)
	}
	if el.ID, err = strconv.Atoi(parts[0]); err != nil {
		return el, fmt.Errorf("bad element id %q", parts[0])
	}
	el.Type = typ
	el.Nodes = make([]int, typ.NodeCount())
	for i, p := range parts[1:] {
		if el.Nodes[i], err = strconv.Atoi(p); err != nil {
			return el, fmt.Errorf("bad node id %q", p)
		}
	}
	return el, nil
}

func splitCommaFields(line string) []string {
	parts := strings.Split(strings.TrimSuffix(line, ","), ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
