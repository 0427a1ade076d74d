package domain

// BuildForest строит лес из плоского списка позиций по ссылкам manager_id.
// Корни - позиции без руководителя. Позиция, ссылающаяся на несуществующий
// id, в лес не попадает. Защита от циклов: уже посещённый id повторно не
// раскрывается.
func BuildForest(positions []Position) []TreeNode {
	visited := make(map[string]bool, len(positions))

	forest := []TreeNode{}
	for _, p := range positions {
		if p.ManagerID == nil {
			forest = append(forest, buildNode(p, 0, positions, visited))
		}
	}

	return forest
}

func buildNode(p Position, depth int, positions []Position, visited map[string]bool) TreeNode {
	visited[p.ID] = true

	node := TreeNode{
		Position: p,
		Depth:    depth,
		Children: []TreeNode{},
	}

	// Дети собираются в порядке исходного списка
	for _, child := range positions {
		if child.ManagerID == nil || *child.ManagerID != p.ID {
			continue
		}
		if visited[child.ID] {
			continue
		}
		node.Children = append(node.Children, buildNode(child, depth+1, positions, visited))
	}

	return node
}

// Flatten разворачивает лес обратно в плоский список позиций (обход в глубину)
func Flatten(forest []TreeNode) []Position {
	var result []Position
	for _, node := range forest {
		result = append(result, node.Position)
		result = append(result, Flatten(node.Children)...)
	}
	return result
}

// CountDirectReports возвращает число прямых подчинённых для каждой позиции
func CountDirectReports(positions []Position) map[string]int {
	counts := make(map[string]int, len(positions))
	for _, p := range positions {
		if p.ManagerID != nil {
			counts[*p.ManagerID]++
		}
	}
	return counts
}
