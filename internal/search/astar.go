package search

// astar runs A* ordered by cost plus heuristic estimate. Unlike greedy it
// stops only once the end node is expanded, which makes the route optimal.
// When the frontier runs dry the session is reset and marked Exhausted.
func (s *Session) astar() {
	s.cost[s.start] = 0
	s.heuristic[s.start] = s.estimate(s.start)
	s.frontier.Push(s.start, s.heuristic[s.start])

	for s.frontier.Len() > 0 {
		current := s.frontier.Pop()
		s.visited[current] = true
		s.expanded++

		if current == s.end {
			s.status = PathFound
			return
		}

		for _, neighbor := range s.graph.Neighbors(current) {
			if s.visited[neighbor] {
				continue
			}

			cost := s.cost[current] + s.graph.Distance(current, neighbor)

			if !s.frontier.Contains(neighbor) {
				s.pred[neighbor] = current
				s.heuristic[neighbor] = s.estimate(neighbor)
				s.cost[neighbor] = cost
				s.frontier.Push(neighbor, cost+s.heuristic[neighbor])
			} else if cost < s.cost[neighbor] {
				s.pred[neighbor] = current
				s.cost[neighbor] = cost
				s.frontier.Update(neighbor, cost+s.heuristic[neighbor])
			}
		}
	}

	expanded := s.expanded
	s.Reset()
	s.expanded = expanded
	s.status = Exhausted
}
