package puzzle

// DefaultSolveLimit Solve 默认最多展开的状态数（覆盖 3×3 的全部 181440 个可达状态）
const DefaultSolveLimit = 200000

type searchNode struct {
	board Board
	blank int
}

type searchEdge struct {
	parent string
	move   int
}

// Solve 广度优先搜索最短还原步骤
//
// 仅适用于小棋盘（验证工具与测试）。返回的每一步是要点击的图块位置。
//
// 参数：
//   - b: 起始棋盘
//   - limit: 最多展开的状态数，<=0 时使用 DefaultSolveLimit
//
// 返回：
//   - []int: 依次点击的位置；已还原时为空
//   - bool: 是否在限制内找到解
func Solve(b Board, limit int) ([]int, bool) {
	if limit <= 0 {
		limit = DefaultSolveLimit
	}
	if IsSolved(b) {
		return nil, true
	}
	if !IsSolvable(b) {
		return nil, false
	}

	n := b.Size()
	startKey := key(b)
	visited := map[string]searchEdge{startKey: {parent: "", move: -1}}
	queue := []searchNode{{board: b.Clone(), blank: b.Blank()}}

	for len(queue) > 0 && len(visited) <= limit {
		current := queue[0]
		queue = queue[1:]
		currentKey := key(current.board)

		for _, pos := range Neighbors(current.blank, n) {
			next := current.board.Clone()
			next[current.blank], next[pos] = next[pos], next[current.blank]
			nextKey := key(next)
			if _, seen := visited[nextKey]; seen {
				continue
			}
			visited[nextKey] = searchEdge{parent: currentKey, move: pos}

			if IsSolved(next) {
				return backtrack(visited, nextKey, startKey), true
			}
			queue = append(queue, searchNode{board: next, blank: pos})
		}
	}
	return nil, false
}

// backtrack 沿父指针还原出点击序列
func backtrack(visited map[string]searchEdge, end, start string) []int {
	var moves []int
	for k := end; k != start; k = visited[k].parent {
		moves = append(moves, visited[k].move)
	}
	for i, j := 0, len(moves)-1; i < j; i, j = i+1, j-1 {
		moves[i], moves[j] = moves[j], moves[i]
	}
	return moves
}

// key 把棋盘编码为 map 键
func key(b Board) string {
	buf := make([]byte, len(b))
	for i, v := range b {
		buf[i] = byte(v)
	}
	return string(buf)
}
