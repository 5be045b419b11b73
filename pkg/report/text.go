package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dd0wney/cluso-labelprop/pkg/algorithms"
)

// maxListedNodes caps the member list printed per community
const maxListedNodes = 12

// styles are bound to one renderer so color detection follows the writer
type styles struct {
	title  lipgloss.Style
	good   lipgloss.Style
	warn   lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
	border lipgloss.Style
}

func newStyles(re *lipgloss.Renderer) styles {
	return styles{
		title:  re.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF00FF")),
		good:   re.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FF00")),
		warn:   re.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFF00")),
		header: re.NewStyle().Bold(true).Padding(0, 1),
		cell:   re.NewStyle().Padding(0, 1),
		border: re.NewStyle().Foreground(lipgloss.Color("#00FFFF")),
	}
}

func (s styles) table(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.border).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header
			}
			return s.cell
		})
}

func renderText(w io.Writer, r *Report) error {
	s := newStyles(lipgloss.NewRenderer(w))
	res := r.Result

	var b strings.Builder
	b.WriteString(s.title.Render("label propagation run "+res.RunID) + "\n")

	status := s.good.Render(string(res.StopReason))
	if !res.Converged {
		status = s.warn.Render(string(res.StopReason))
	}
	fmt.Fprintf(&b, "graph     %d nodes, %d edges\n", r.Nodes, r.Edges)
	fmt.Fprintf(&b, "workers   %d\n", res.Workers)
	fmt.Fprintf(&b, "rounds    %d (%s)\n", res.Rounds, status)
	fmt.Fprintf(&b, "duration  %s\n", res.Duration)
	if t := r.Topology; t != nil {
		fmt.Fprintf(&b, "topology  %d components (largest %d), %d isolated, degree max %d avg %.2f\n",
			t.Components, t.LargestComponent, t.IsolatedNodes, t.MaxDegree, t.AverageDegree)
		fmt.Fprintf(&b, "          %d triangles, clustering %.3f, bipartite %t\n",
			t.Triangles, t.AverageClustering, t.Bipartite)
	}
	if v := r.Verification; v != nil {
		if v.Matched {
			fmt.Fprintf(&b, "verified  %s\n", s.good.Render(fmt.Sprintf("sequential run agrees (%d rounds)", v.Rounds)))
		} else {
			fmt.Fprintf(&b, "verified  %s\n", s.warn.Render(fmt.Sprintf("sequential run differs (%d rounds)", v.Rounds)))
		}
	}
	b.WriteString("\n")

	writeShards(&b, s, res)
	writeCommunities(&b, s, res.Communities)
	if len(r.Metrics) > 0 {
		writeMetrics(&b, s, r.Metrics)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeShards(b *strings.Builder, s styles, res *algorithms.Result) {
	t := s.table("shard", "nodes", "size", "cut edges")
	for _, shard := range res.Shards {
		cuts := 0
		if res.Partition != nil && shard.Index < len(res.Partition.EdgeCuts) {
			cuts = res.Partition.EdgeCuts[shard.Index]
		}
		t.Row(
			strconv.Itoa(shard.Index),
			fmt.Sprintf("[%d, %d)", shard.Start, shard.End),
			strconv.Itoa(shard.Len()),
			strconv.Itoa(cuts),
		)
	}

	b.WriteString(s.title.Render("shards") + "\n")
	b.WriteString(t.Render() + "\n")
	if res.Partition != nil {
		fmt.Fprintf(b, "load balance %.3f, cut ratio %.3f\n", res.Partition.LoadBalance, res.Partition.CutRatio)
	}
	b.WriteString("\n")
}

func writeCommunities(b *strings.Builder, s styles, cd *algorithms.CommunityDetectionResult) {
	if cd == nil {
		return
	}

	t := s.table("id", "label", "size", "density", "members")
	for _, c := range cd.Communities {
		t.Row(
			strconv.Itoa(c.ID),
			strconv.Itoa(c.Label),
			strconv.Itoa(c.Size),
			strconv.FormatFloat(c.Density, 'f', 3, 64),
			memberList(c.Nodes),
		)
	}

	fmt.Fprintf(b, "%s (%d, modularity %.4f)\n", s.title.Render("communities"), len(cd.Communities), cd.Modularity)
	b.WriteString(t.Render() + "\n\n")
}

func writeMetrics(b *strings.Builder, s styles, snapshot map[string]float64) {
	names := make([]string, 0, len(snapshot))
	for name := range snapshot {
		names = append(names, name)
	}
	sort.Strings(names)

	t := s.table("metric", "value")
	for _, name := range names {
		t.Row(name, strconv.FormatFloat(snapshot[name], 'g', -1, 64))
	}

	b.WriteString(s.title.Render("metrics") + "\n")
	b.WriteString(t.Render() + "\n")
}

func memberList(nodes []int) string {
	shown := nodes
	if len(shown) > maxListedNodes {
		shown = shown[:maxListedNodes]
	}
	parts := make([]string, len(shown))
	for i, id := range shown {
		parts[i] = strconv.Itoa(id)
	}
	list := strings.Join(parts, " ")
	if len(nodes) > maxListedNodes {
		list += fmt.Sprintf(" ... (+%d)", len(nodes)-maxListedNodes)
	}
	return list
}
