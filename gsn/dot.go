package gsn

import (
	"fmt"
	"strings"
)

// postureFills maps each posture to the fill color used for the root goal
// and the triage sub-goal.
var postureFills = map[string]string{
	"green": "#B7E1CD",
	"amber": "#FFF2CC",
	"red":   "#F4C7C3",
}

// shapes maps node kinds to Graphviz shapes following GSN drawing
// conventions.
var shapes = map[NodeKind]string{
	NodeGoal:          "box",
	NodeStrategy:      "parallelogram",
	NodeContext:       "box",
	NodeAssumption:    "note",
	NodeJustification: "note",
	NodeEvidence:      "ellipse",
	NodeSubGoal:       "box",
	NodeSolution:      "octagon",
}

// DOT renders the case as a Graphviz digraph. Output is deterministic:
// nodes appear in tree order with their fixed IDs, so rendering the same
// note twice yields byte-identical text.
func (c *Case) DOT() string {
	var b strings.Builder
	b.WriteString("digraph assurance_case {\n")
	b.WriteString("  rankdir=TB;\n")
	b.WriteString("  node [fontname=\"Helvetica\" fontsize=10 style=filled fillcolor=\"#F5F5F5\"];\n")

	writeDOTNode(&b, c, c.Root)
	writeDOTEdges(&b, c.Root)

	b.WriteString("}\n")
	return b.String()
}

func writeDOTNode(b *strings.Builder, c *Case, n *Node) {
	// Labels are quoted by hand: the \n between ID and text is a Graphviz
	// line break, not a Go escape.
	attrs := []string{
		`label="` + escapeLabel(n.ID) + `\n` + escapeLabel(n.Label) + `"`,
		fmt.Sprintf("shape=%s", shapes[n.Kind]),
	}
	// The posture colors the nodes that carry it.
	if n.ID == "G1" || n.ID == "SG2" {
		if fill, ok := postureFills[c.Posture.String()]; ok {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill))
		}
	}
	fmt.Fprintf(b, "  %q [%s];\n", n.ID, strings.Join(attrs, " "))
	for _, child := range n.Children {
		writeDOTNode(b, c, child)
	}
}

func writeDOTEdges(b *strings.Builder, n *Node) {
	for _, child := range n.Children {
		fmt.Fprintf(b, "  %q -> %q;\n", n.ID, child.ID)
		writeDOTEdges(b, child)
	}
}

func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}
