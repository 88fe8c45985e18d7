package search

import "github.com/MaastrichtU-BISS/wayfinder/internal/visgraph"

// dijkstra runs uniform-cost search without a priority queue: every step
// scans all unvisited nodes for the lowest cost, lowest ID first on ties.
// The run visits every node, so it also settles nodes beyond the end node.
func (s *Session) dijkstra() {
	n := s.graph.Len()
	s.cost[s.start] = 0

	for visitedCount := 0; visitedCount < n; visitedCount++ {
		current := visgraph.None
		for i := 0; i < n; i++ {
			id := visgraph.NodeID(i)
			if s.visited[id] {
				continue
			}
			if current == visgraph.None || s.cost[id] < s.cost[current] {
				current = id
			}
		}

		s.visited[current] = true
		s.expanded++

		// nothing left that the start node can reach
		if s.cost[current] == Unreached {
			continue
		}

		for _, neighbor := range s.graph.Neighbors(current) {
			if s.visited[neighbor] {
				continue
			}
			cost := s.cost[current] + s.graph.Distance(current, neighbor)
			if cost < s.cost[neighbor] {
				s.cost[neighbor] = cost
				s.pred[neighbor] = current
			}
		}
	}

	if s.end == s.start || s.pred[s.end] != visgraph.None {
		s.status = PathFound
		return
	}
	s.status = Exhausted
}
