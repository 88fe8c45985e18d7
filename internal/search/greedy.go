package search

// greedy runs best-first search ordered by the heuristic estimate alone.
//
// The frontier key never depends on cost, so a cheaper route found to a
// pending node updates its cost and predecessor without reordering the heap.
// The run stops as soon as the end node is pending; the end node itself is
// never expanded.
func (s *Session) greedy() {
	s.cost[s.start] = 0
	s.heuristic[s.start] = s.estimate(s.start)
	s.frontier.Push(s.start, s.heuristic[s.start])

	for !s.frontier.Contains(s.end) && s.frontier.Len() > 0 {
		current := s.frontier.Pop()
		s.visited[current] = true
		s.expanded++

		for _, neighbor := range s.graph.Neighbors(current) {
			if s.visited[neighbor] {
				continue
			}

			cost := s.cost[current] + s.graph.Distance(current, neighbor)

			if !s.frontier.Contains(neighbor) {
				s.pred[neighbor] = current
				s.heuristic[neighbor] = s.estimate(neighbor)
				s.cost[neighbor] = cost
				s.frontier.Push(neighbor, s.heuristic[neighbor])
			} else if cost < s.cost[neighbor] {
				s.pred[neighbor] = current
				s.heuristic[neighbor] = s.estimate(neighbor)
				s.cost[neighbor] = cost
			}
		}
	}

	if s.frontier.Contains(s.end) {
		s.status = PathFound
		return
	}

	expanded := s.expanded
	s.Reset()
	s.expanded = expanded
	s.status = Exhausted
}
