package autodiff

// Walk calls visit once for every Function reachable from root, starting at
// root's producer and moving towards the leaves. It only reads the graph.
func Walk(root *Variable, visit func(*Function)) {
	if root.producer == nil {
		return
	}

	seen := map[*Function]struct{}{root.producer: {}}
	stack := []*Function{root.producer}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(f)

		for _, in := range f.inputs {
			p := in.producer
			if p == nil {
				continue
			}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			stack = append(stack, p)
		}
	}
}
