// Package topology loads the two-file CSV topology format (nodes and
// edges) into an airfield.Graph, applying the validation rules the
// external interface requires: malformed rows and missing columns reject
// the whole run, but an edge referencing an unknown node is simply
// skipped.
package topology

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/avtools/airfieldsim/internal/airfield"
)

var requiredNodeColumns = []string{"id", "type", "name", "x", "y", "notes"}
var requiredEdgeColumns = []string{"from", "to", "type", "length", "desc"}

// Load reads the nodes and edges CSV files and builds a graph from them.
// Topology errors (malformed rows, missing required columns, unparseable
// numbers) reject the run with a descriptive error; an edge whose endpoint
// is not a known node is skipped rather than rejecting the run.
func Load(nodesFile, edgesFile string) (*airfield.Graph, error) {
	g := airfield.NewGraph()

	if err := loadNodes(g, nodesFile); err != nil {
		return nil, fmt.Errorf("topology: %w", err)
	}
	if err := loadEdges(g, edgesFile); err != nil {
		return nil, fmt.Errorf("topology: %w", err)
	}
	return g, nil
}

func loadNodes(g *airfield.Graph, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening nodes file: %w", err)
	}
	defer f.Close()

	col, rows, err := readCSV(f, requiredNodeColumns)
	if err != nil {
		return fmt.Errorf("nodes file: %w", err)
	}

	for i, row := range rows {
		id, err := strconv.Atoi(row[col["id"]])
		if err != nil {
			return fmt.Errorf("nodes file row %d: invalid id %q: %w", i+2, row[col["id"]], err)
		}
		x, err := strconv.ParseFloat(row[col["x"]], 64)
		if err != nil {
			return fmt.Errorf("nodes file row %d: invalid x %q: %w", i+2, row[col["x"]], err)
		}
		y, err := strconv.ParseFloat(row[col["y"]], 64)
		if err != nil {
			return fmt.Errorf("nodes file row %d: invalid y %q: %w", i+2, row[col["y"]], err)
		}
		kind := airfield.NodeKind(row[col["type"]])
		if !isKnownNodeKind(kind) {
			return fmt.Errorf("nodes file row %d: unknown node type %q", i+2, kind)
		}

		g.AddNode(airfield.Node{
			ID:    id,
			Kind:  kind,
			Name:  row[col["name"]],
			X:     x,
			Y:     y,
			Notes: row[col["notes"]],
		})
	}
	return nil
}

func loadEdges(g *airfield.Graph, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening edges file: %w", err)
	}
	defer f.Close()

	col, rows, err := readCSV(f, requiredEdgeColumns)
	if err != nil {
		return fmt.Errorf("edges file: %w", err)
	}
	hasCapacity, capIdx := false, -1
	if idx, ok := col["capacity"]; ok {
		hasCapacity, capIdx = true, idx
	}

	for i, row := range rows {
		from, err := strconv.Atoi(row[col["from"]])
		if err != nil {
			return fmt.Errorf("edges file row %d: invalid from %q: %w", i+2, row[col["from"]], err)
		}
		to, err := strconv.Atoi(row[col["to"]])
		if err != nil {
			return fmt.Errorf("edges file row %d: invalid to %q: %w", i+2, row[col["to"]], err)
		}
		length, err := strconv.ParseFloat(row[col["length"]], 64)
		if err != nil {
			return fmt.Errorf("edges file row %d: invalid length %q: %w", i+2, row[col["length"]], err)
		}
		kind := airfield.EdgeKind(row[col["type"]])
		if !isKnownEdgeKind(kind) {
			return fmt.Errorf("edges file row %d: unknown edge type %q", i+2, kind)
		}

		capacity := 0
		if hasCapacity && strings.TrimSpace(row[capIdx]) != "" {
			capacity, err = strconv.Atoi(row[capIdx])
			if err != nil {
				return fmt.Errorf("edges file row %d: invalid capacity %q: %w", i+2, row[capIdx], err)
			}
		}

		if _, ok := g.Node(from); !ok {
			continue // unknown endpoint: skip the edge, not an error
		}
		if _, ok := g.Node(to); !ok {
			continue
		}

		if err := g.AddEdge(from, to, kind, length, capacity, row[col["desc"]]); err != nil {
			return fmt.Errorf("edges file row %d: %w", i+2, err)
		}
	}
	return nil
}

// readCSV parses a CSV file with a header row, returning a column-name to
// index map (for the required columns plus "capacity" if present) and the
// remaining rows.
func readCSV(r io.Reader, required []string) (map[string]int, [][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := col[name]; !ok {
			return nil, nil, fmt.Errorf("missing required column %q", name)
		}
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading row: %w", err)
		}
		rows = append(rows, row)
	}
	return col, rows, nil
}

func isKnownNodeKind(k airfield.NodeKind) bool {
	switch k {
	case airfield.NodeRunwayThreshold, airfield.NodeTaxiway, airfield.NodeApron, airfield.NodeStand, airfield.NodeConnector:
		return true
	}
	return false
}

func isKnownEdgeKind(k airfield.EdgeKind) bool {
	switch k {
	case airfield.EdgeRunway, airfield.EdgeRunwayEntry, airfield.EdgeRunwayExit, airfield.EdgeTaxiway, airfield.EdgeApronLink, airfield.EdgeStandLink:
		return true
	}
	return false
}
