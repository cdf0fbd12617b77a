package searcher

import (
	"fmt"
	"strings"

	"github.com/awalterschulze/gographviz"
)

const graphName = "G"

// ToDot renders the tree of the last search in Graphviz DOT format.
func (m *MCTS) ToDot() (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName(graphName); err != nil {
		return "", fmt.Errorf("failed to name graph: %w", err)
	}
	if err := g.SetDir(true); err != nil {
		return "", fmt.Errorf("failed to direct graph: %w", err)
	}

	for i := range m.tree.nodes {
		n := &m.tree.nodes[i]
		attrs := map[string]string{
			"fontname": `"Monaco"`,
			"shape":    "box",
			"label":    nodeLabel(i, n),
		}
		if err := g.AddNode(graphName, nodeName(i), attrs); err != nil {
			return "", fmt.Errorf("failed to add node %d: %w", i, err)
		}
	}

	for i := range m.tree.nodes {
		n := &m.tree.nodes[i]
		for j, child := range n.children {
			attrs := map[string]string{"label": fmt.Sprintf(`"%d"`, n.moves[j])}
			if err := g.AddEdge(nodeName(i), nodeName(child), true, attrs); err != nil {
				return "", fmt.Errorf("failed to add edge %d->%d: %w", i, child, err)
			}
		}
	}
	return g.String(), nil
}

func nodeName(i int) string {
	return fmt.Sprintf("n%d", i)
}

func nodeLabel(i int, n *node) string {
	board := strings.TrimSuffix(n.board.String(), "\n")
	label := fmt.Sprintf("node %d\nvisits=%d reward=%d\n%s", i, n.visits, n.reward, board)
	// DOT reads \l as a left-justified line break
	return `"` + strings.ReplaceAll(label, "\n", `\l`) + `\l"`
}
