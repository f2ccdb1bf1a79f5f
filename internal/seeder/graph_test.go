package seeder

import (
	"testing"

	"github.com/Lumos-Labs-HQ/demoseed/internal/demodata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertionOrderKeepsDeclaredOrder(t *testing.T) {
	g := NewDependencyGraph()
	for _, d := range demodata.Datasets() {
		g.AddTable(d)
	}

	order, err := g.BuildInsertionOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"services", "parts", "suppliers"}, order)
}

func TestInsertionOrderPutsDependenciesFirst(t *testing.T) {
	g := NewDependencyGraph()
	g.AddTable(demodata.Dataset{Table: "parts", Dependencies: []string{"suppliers", "parts"}})
	g.AddTable(demodata.Dataset{Table: "services"})
	g.AddTable(demodata.Dataset{Table: "suppliers", Dependencies: []string{"warehouses"}})

	order, err := g.BuildInsertionOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"suppliers", "parts", "services"}, order)
}

func TestInsertionOrderDetectsCycles(t *testing.T) {
	g := NewDependencyGraph()
	g.AddTable(demodata.Dataset{Table: "a", Dependencies: []string{"b"}})
	g.AddTable(demodata.Dataset{Table: "b", Dependencies: []string{"a"}})

	_, err := g.BuildInsertionOrder()
	assert.ErrorContains(t, err, "circular dependency")
}
