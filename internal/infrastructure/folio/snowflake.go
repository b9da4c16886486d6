// Package folio issues the human-facing folio numbers printed on cuts.
package folio

import (
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
)

// maxNode is the highest node number with the default 10 node bits
const maxNode = 1023

// epoch anchors folio timestamps so numbers stay short for years
var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Generator hands out unique, time-ordered folios. Instances sharing a
// database must use distinct node numbers.
type Generator struct {
	node *snowflake.Node
}

// NewGenerator creates a generator for node
func NewGenerator(node int64) (*Generator, error) {
	if node < 0 || node > maxNode {
		return nil, fmt.Errorf("folio node must be between 0 and %d, got %d", maxNode, node)
	}
	// snowflake.Epoch is package state; every generator in the process uses the same value
	snowflake.Epoch = epoch.UnixMilli()
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("create folio node: %w", err)
	}
	return &Generator{node: n}, nil
}

// NextFolio returns the next folio
func (g *Generator) NextFolio() int64 {
	return g.node.Generate().Int64()
}
