package seeder

import (
	"fmt"

	"github.com/Lumos-Labs-HQ/demoseed/internal/demodata"
)

// DependencyGraph orders datasets so referenced tables are seeded first.
// Tables without dependencies keep the order they were added in.
type DependencyGraph struct {
	tables map[string]demodata.Dataset
	names  []string
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		tables: make(map[string]demodata.Dataset),
	}
}

func (g *DependencyGraph) AddTable(d demodata.Dataset) {
	if _, exists := g.tables[d.Table]; !exists {
		g.names = append(g.names, d.Table)
	}
	g.tables[d.Table] = d
}

func (g *DependencyGraph) BuildInsertionOrder() ([]string, error) {
	visited := make(map[string]bool)
	temp := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(tableName string) error {
		if temp[tableName] {
			return fmt.Errorf("circular dependency detected involving table: %s", tableName)
		}
		if visited[tableName] {
			return nil
		}

		temp[tableName] = true
		if table, ok := g.tables[tableName]; ok {
			for _, dep := range table.Dependencies {
				if dep == tableName {
					continue
				}
				if _, known := g.tables[dep]; !known {
					continue
				}
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		temp[tableName] = false
		visited[tableName] = true
		order = append(order, tableName)
		return nil
	}

	for _, tableName := range g.names {
		if err := visit(tableName); err != nil {
			return nil, err
		}
	}

	return order, nil
}
