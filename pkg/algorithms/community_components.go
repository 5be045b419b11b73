package algorithms

import (
	"container/list"
	"sort"
)

// ConnectedComponents finds all connected components of an undirected
// topology. Components are ordered by their smallest node, and the members of
// each component are sorted.
func ConnectedComponents(g Topology) [][]int {
	visited := make([]bool, g.Len())
	components := make([][]int, 0)

	// BFS to find each component
	for start := 0; start < g.Len(); start++ {
		if visited[start] {
			continue
		}

		members := []int{start}
		visited[start] = true
		queue := list.New()
		queue.PushBack(start)

		for queue.Len() > 0 {
			current := queue.Remove(queue.Front()).(int)
			for _, n := range g.Neighbors(current) {
				if !visited[n] {
					visited[n] = true
					members = append(members, n)
					queue.PushBack(n)
				}
			}
		}

		sort.Ints(members)
		components = append(components, members)
	}

	return components
}
