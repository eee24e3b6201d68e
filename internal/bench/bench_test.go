package main

import "testing"

func TestEvalAllVisitsNodes(t *testing.T) {
	nodes, _ := evalAll(2)
	if nodes == 0 {
		t.Fatal("evalAll(2) visited zero nodes")
	}
}

func TestEvalAllNodesGrowWithDepth(t *testing.T) {
	if testing.Short() {
		t.SkipNow()
	}
	shallow, _ := evalAll(2)
	deep, _ := evalAll(3)
	if deep <= shallow {
		t.Errorf("evalAll(3) = %d nodes, want more than evalAll(2) = %d", deep, shallow)
	}
}
