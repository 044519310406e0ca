// Package bom implements multi-level BOM explosion: cycle detection,
// low-level coding, and time-phased gross-requirement propagation.
package bom

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/mrp-planner/pkg/domain/entities"
	"github.com/vsinha/mrp-planner/pkg/domain/repositories"
	"github.com/vsinha/mrp-planner/pkg/shared"
)

// Demand is per-product, per-bucket demand keyed the same way as the MPS
// output: one decimal per weekly bucket, in bucket order.
type Demand map[string][]decimal.Decimal

// Result is the BOM explosion output: gross requirements for every
// product touched (roots plus every exploded descendant) and each
// product's low-level code.
type Result struct {
	GrossRequirements Demand
	LowLevelCodes     map[string]int
	MaxLevel          int
}

// Service performs BOM explosion against the active BOM line set.
type Service struct {
	BOM repositories.BOMRepository
}

// NewService wires the BOM explosion stage.
func NewService(bomRepo repositories.BOMRepository) *Service {
	return &Service{BOM: bomRepo}
}

type graph struct {
	children map[string][]entities.BOMLine // parent -> lines
	hasParent map[string]bool              // child appears as someone's child
}

func buildGraph(lines []entities.BOMLine) *graph {
	g := &graph{children: map[string][]entities.BOMLine{}, hasParent: map[string]bool{}}
	for _, l := range lines {
		g.children[l.ParentCode] = append(g.children[l.ParentCode], l)
		g.hasParent[l.ChildCode] = true
	}
	return g
}

const (
	white = 0
	grey  = 1
	black = 2
)

// checkCycles runs 3-color DFS over the whole graph; any back edge (an
// edge into a grey node) is a cycle and yields ErrCircularBOM with the
// path from the DFS root down to the repeated node.
func checkCycles(g *graph, roots []string) error {
	color := map[string]int{}
	var path []string

	var visit func(node string) error
	visit = func(node string) error {
		color[node] = grey
		path = append(path, node)
		for _, line := range g.children[node] {
			child := line.ChildCode
			switch color[child] {
			case grey:
				cyclePath := append(append([]string{}, path...), child)
				return fmt.Errorf("%w: %s", entities.ErrCircularBOM, strings.Join(cyclePath, " -> "))
			case white:
				if err := visit(child); err != nil {
					return err
				}
			}
		}
		path = path[:len(path)-1]
		color[node] = black
		return nil
	}

	for _, r := range roots {
		if color[r] == white {
			if err := visit(r); err != nil {
				return err
			}
		}
	}
	// Any node never reached from a declared root (orphan sub-graph) is
	// still checked, since a self-loop or cycle among non-root nodes must
	// also be caught.
	var all []string
	for parent := range g.children {
		all = append(all, parent)
	}
	sort.Strings(all)
	for _, n := range all {
		if color[n] == white {
			if err := visit(n); err != nil {
				return err
			}
		}
	}
	return nil
}

// lowLevelCodes computes, for every node, the maximum depth observed over
// all root-to-node paths (invariant 3).
func lowLevelCodes(g *graph, roots []string) (map[string]int, int) {
	codes := map[string]int{}
	maxLevel := 0

	var visit func(node string, depth int)
	visit = func(node string, depth int) {
		if cur, ok := codes[node]; !ok || depth > cur {
			codes[node] = depth
		}
		if depth > maxLevel {
			maxLevel = depth
		}
		for _, line := range g.children[node] {
			visit(line.ChildCode, depth+1)
		}
	}

	for _, r := range roots {
		if _, ok := codes[r]; !ok {
			codes[r] = 0
		}
		visit(r, 0)
	}
	return codes, maxLevel
}

// roots returns every FINISHED product plus every product that appears as
// a parent but never as a child of any other line.
func roots(lines []entities.BOMLine, finished []string) []string {
	seen := map[string]bool{}
	var result []string
	for _, f := range finished {
		if !seen[f] {
			seen[f] = true
			result = append(result, f)
		}
	}
	isChild := map[string]bool{}
	for _, l := range lines {
		isChild[l.ChildCode] = true
	}
	var parents []string
	for p := range (func() map[string]bool {
		m := map[string]bool{}
		for _, l := range lines {
			m[l.ParentCode] = true
		}
		return m
	})() {
		parents = append(parents, p)
	}
	sort.Strings(parents)
	for _, p := range parents {
		if !isChild[p] && !seen[p] {
			seen[p] = true
			result = append(result, p)
		}
	}
	sort.Strings(result)
	return result
}

// Explode performs the level-sweep explosion over the given root demand
// (typically the MPS stage's per-product weekly demand for FINISHED
// products). Empty BOM lines degrade to a pure MPS pass-through.
func (s *Service) Explode(ctx context.Context, rootDemand Demand) (Result, error) {
	lines, err := s.BOM.ListActive(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("bom: list active lines: %w", err)
	}

	var finishedRoots []string
	for code := range rootDemand {
		finishedRoots = append(finishedRoots, code)
	}
	sort.Strings(finishedRoots)

	g := buildGraph(lines)
	allRoots := roots(lines, finishedRoots)

	if err := checkCycles(g, allRoots); err != nil {
		return Result{}, err
	}

	codes, maxLevel := lowLevelCodes(g, allRoots)

	gross := Demand{}
	for code, series := range rootDemand {
		gross[code] = append([]decimal.Decimal(nil), series...)
	}

	nodesByLevel := map[int][]string{}
	for node, lvl := range codes {
		nodesByLevel[lvl] = append(nodesByLevel[lvl], node)
	}

	for level := 0; level <= maxLevel; level++ {
		nodes := nodesByLevel[level]
		sort.Strings(nodes)
		for _, parent := range nodes {
			parentSeries, ok := gross[parent]
			if !ok {
				continue
			}
			for _, line := range g.children[parent] {
				if !line.Active {
					continue
				}
				childSeries, ok := gross[line.ChildCode]
				if !ok {
					childSeries = make([]decimal.Decimal, len(parentSeries))
				}
				for i, parentQty := range parentSeries {
					if i >= len(childSeries) {
						break
					}
					if parentQty.IsZero() {
						continue
					}
					childQty := shared.Round4(parentQty.Mul(line.EffectiveQtyPer()))
					childSeries[i] = shared.Round4(childSeries[i].Add(childQty))
				}
				gross[line.ChildCode] = childSeries
			}
		}
	}

	return Result{GrossRequirements: gross, LowLevelCodes: codes, MaxLevel: maxLevel}, nil
}
