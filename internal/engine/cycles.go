package engine

import (
	"gorm.io/gorm"
)

// wouldCreateSubtaskCycle reports whether making candidateParentID the
// parent of taskID would make the subtask tree cyclic. It walks breadth
// first down from taskID through persisted child edges; if the proposed
// parent shows up among the descendants, attaching to it would close a
// loop. Each BFS level is loaded in one chunked query, never row by row.
func wouldCreateSubtaskCycle(tx *gorm.DB, taskID, candidateParentID uint) (bool, error) {
	if taskID == candidateParentID {
		return true, nil
	}

	visited := map[uint]bool{taskID: true}
	frontier := []uint{taskID}

	for len(frontier) > 0 {
		children, err := loadChildren(tx, frontier)
		if err != nil {
			return false, err
		}

		var next []uint
		for _, child := range children {
			if child.ID == candidateParentID {
				return true, nil
			}
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true
			next = append(next, child.ID)
		}
		frontier = next
	}

	return false, nil
}

// wouldCreateDependencyCycle reports whether adding the edge
// blockingID -> blockedID would close a cycle in the blocking graph.
// It walks breadth first from blockedID along existing edges ("tasks that
// blockedID already blocks, transitively"); reaching blockingID means the
// new edge would complete a loop. extraEdges overlays edges proposed in
// the same batch but not yet persisted, keyed by blocking task.
func wouldCreateDependencyCycle(tx *gorm.DB, blockingID, blockedID uint, extraEdges map[uint][]uint) (bool, error) {
	if blockingID == blockedID {
		return true, nil
	}

	visited := map[uint]bool{blockedID: true}
	frontier := []uint{blockedID}

	for len(frontier) > 0 {
		edges, err := loadEdgesFromBlocking(tx, frontier)
		if err != nil {
			return false, err
		}

		targets := make([]uint, 0, len(edges))
		for _, edge := range edges {
			targets = append(targets, edge.BlockedTaskID)
		}
		for _, id := range frontier {
			targets = append(targets, extraEdges[id]...)
		}

		var next []uint
		for _, target := range targets {
			if target == blockingID {
				return true, nil
			}
			if visited[target] {
				continue
			}
			visited[target] = true
			next = append(next, target)
		}
		frontier = next
	}

	return false, nil
}

// batchEdgesContainCycle checks whether the proposed edges of one batch
// already form a cycle among themselves, before looking at the persisted
// graph at all. Two items "A blocks B" and "B blocks A" in one request
// must fail even though neither edge exists yet. DFS with white/gray/black
// coloring; an edge into a gray node is a back-edge.
func batchEdgesContainCycle(edges [][2]uint) bool {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	adj := make(map[uint][]uint, len(edges))
	for _, edge := range edges {
		adj[edge[0]] = append(adj[edge[0]], edge[1])
	}

	color := make(map[uint]int, len(adj))

	var dfs func(node uint) bool
	dfs = func(node uint) bool {
		color[node] = gray
		for _, next := range adj[node] {
			if color[next] == gray {
				return true
			}
			if color[next] == white && dfs(next) {
				return true
			}
		}
		color[node] = black
		return false
	}

	for node := range adj {
		if color[node] == white && dfs(node) {
			return true
		}
	}
	return false
}

// reparentCreatesDeadlock reports whether moving taskID under
// candidateParentID would place a blocking edge inside one subtask
// chain: some task in the new ancestor chain blocking taskID or one of
// its subtasks. Such an edge deadlocks both ends the moment the parent
// link exists, so the move is rejected the same way adding the edge
// would be. overrideParents overlays reparentings from the same batch.
func reparentCreatesDeadlock(tx *gorm.DB, taskID, candidateParentID uint, overrideParents map[uint]*uint) (bool, error) {
	ancestors, err := ancestorChain(tx, candidateParentID, overrideParents)
	if err != nil {
		return false, err
	}
	subtree, err := subtreeOf(tx, taskID, overrideParents)
	if err != nil {
		return false, err
	}

	ids := make([]uint, 0, len(subtree))
	for id := range subtree {
		ids = append(ids, id)
	}
	edges, err := loadEdgesToBlocked(tx, ids)
	if err != nil {
		return false, err
	}
	for _, edge := range edges {
		if ancestors[edge.BlockingTaskID] {
			return true, nil
		}
	}
	return false, nil
}

// ancestorChain collects startID and every task above it in the subtask
// tree, following overrideParents where present. The visited set doubles
// as the result and stops the walk on corrupt looping parent data.
func ancestorChain(tx *gorm.DB, startID uint, overrideParents map[uint]*uint) (map[uint]bool, error) {
	chain := make(map[uint]bool)
	current := startID

	for {
		if chain[current] {
			return chain, nil
		}
		chain[current] = true

		var parent *uint
		if override, ok := overrideParents[current]; ok {
			parent = override
		} else {
			tasks, err := loadTasksByID(tx, []uint{current})
			if err != nil {
				return nil, err
			}
			task, ok := tasks[current]
			if !ok {
				return chain, nil
			}
			parent = task.ParentTaskID
		}

		if parent == nil {
			return chain, nil
		}
		current = *parent
	}
}

// subtreeOf collects rootID and every descendant, seen through
// overrideParents: a child reparented away by the batch leaves the
// subtree, a task reparented under a member joins it.
func subtreeOf(tx *gorm.DB, rootID uint, overrideParents map[uint]*uint) (map[uint]bool, error) {
	members := map[uint]bool{rootID: true}
	frontier := []uint{rootID}

	for len(frontier) > 0 {
		children, err := loadChildren(tx, frontier)
		if err != nil {
			return nil, err
		}

		var next []uint
		for _, child := range children {
			if override, ok := overrideParents[child.ID]; ok {
				if override == nil || !members[*override] {
					continue
				}
			}
			if members[child.ID] {
				continue
			}
			members[child.ID] = true
			next = append(next, child.ID)
		}
		for id, parent := range overrideParents {
			if parent != nil && members[*parent] && !members[id] {
				members[id] = true
				next = append(next, id)
			}
		}
		frontier = next
	}

	return members, nil
}

// isAncestorInSubtaskTree walks the parent chain upward from taskID and
// reports whether candidateAncestorID is encountered. overrideParents maps
// task -> proposed parent for reparentings in the current batch, so the
// walk sees the union of persisted and proposed edges. The visited set
// guards against corrupt parent data looping forever.
func isAncestorInSubtaskTree(tx *gorm.DB, candidateAncestorID, taskID uint, overrideParents map[uint]*uint) (bool, error) {
	visited := make(map[uint]bool)
	current := taskID

	for {
		if current == candidateAncestorID {
			return true, nil
		}
		if visited[current] {
			return false, nil
		}
		visited[current] = true

		var parent *uint
		if override, ok := overrideParents[current]; ok {
			parent = override
		} else {
			tasks, err := loadTasksByID(tx, []uint{current})
			if err != nil {
				return false, err
			}
			task, ok := tasks[current]
			if !ok {
				return false, nil
			}
			parent = task.ParentTaskID
		}

		if parent == nil {
			return false, nil
		}
		current = *parent
	}
}
