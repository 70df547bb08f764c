package topology

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/avtools/airfieldsim/internal/airfield"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadBuildsGraph(t *testing.T) {
	dir := t.TempDir()
	nodes := writeFile(t, dir, "nodes.csv", ""+
		"id,type,name,x,y,notes\n"+
		"1,runway_thr,RWY07,0,0,\n"+
		"2,runway_thr,RWY25,1000,0,\n"+
		"3,taxiway,Alpha,10,5,\n"+
		"4,apron,Apron1,20,10,\n"+
		"5,stand,Gate1,25,15,\n")
	edges := writeFile(t, dir, "edges.csv", ""+
		"from,to,type,length,desc\n"+
		"1,2,runway,1000,main runway\n"+
		"1,3,runway_exit,10,exit alpha\n"+
		"2,3,runway_entry,10,entry alpha\n"+
		"3,4,taxiway,10,taxiway a\n"+
		"4,5,stand_link,5,\n")

	g, err := Load(nodes, edges)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if g.NodeCount() != 5 {
		t.Errorf("NodeCount() = %d, want 5", g.NodeCount())
	}
	if g.EdgeCount() != 5 {
		t.Errorf("EdgeCount() = %d, want 5", g.EdgeCount())
	}

	e, ok := g.Edge(1, 2)
	if !ok || e.Kind != airfield.EdgeRunway {
		t.Fatalf("expected runway edge between 1 and 2, got %+v ok=%v", e, ok)
	}
	if e.Capacity != 1 {
		t.Errorf("runway capacity = %d, want 1", e.Capacity)
	}
}

func TestLoadSkipsEdgesWithUnknownEndpoints(t *testing.T) {
	dir := t.TempDir()
	nodes := writeFile(t, dir, "nodes.csv", ""+
		"id,type,name,x,y,notes\n"+
		"1,runway_thr,RWY07,0,0,\n")
	edges := writeFile(t, dir, "edges.csv", ""+
		"from,to,type,length,desc\n"+
		"1,99,taxiway,10,dangling\n")

	g, err := Load(nodes, edges)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0 (edge with unknown endpoint should be skipped)", g.EdgeCount())
	}
}

func TestLoadRejectsMissingColumn(t *testing.T) {
	dir := t.TempDir()
	nodes := writeFile(t, dir, "nodes.csv", "id,type,name,x,y\n1,runway_thr,RWY07,0,0\n")
	edges := writeFile(t, dir, "edges.csv", "from,to,type,length,desc\n")

	if _, err := Load(nodes, edges); err == nil {
		t.Fatal("expected error for missing notes column")
	}
}

func TestLoadRejectsMalformedRow(t *testing.T) {
	dir := t.TempDir()
	nodes := writeFile(t, dir, "nodes.csv", "id,type,name,x,y,notes\nnot-a-number,runway_thr,RWY07,0,0,\n")
	edges := writeFile(t, dir, "edges.csv", "from,to,type,length,desc\n")

	if _, err := Load(nodes, edges); err == nil {
		t.Fatal("expected error for non-numeric node id")
	}
}

func TestLoadParsesExplicitCapacity(t *testing.T) {
	dir := t.TempDir()
	nodes := writeFile(t, dir, "nodes.csv", ""+
		"id,type,name,x,y,notes\n1,taxiway,A,0,0,\n2,taxiway,B,1,1,\n")
	edges := writeFile(t, dir, "edges.csv", ""+
		"from,to,type,length,desc,capacity\n1,2,taxiway,10,wide link,3\n")

	g, err := Load(nodes, edges)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	e, ok := g.Edge(1, 2)
	if !ok {
		t.Fatal("expected edge between 1 and 2")
	}
	if e.Capacity != 3 {
		t.Errorf("Capacity = %d, want 3", e.Capacity)
	}
}
