package teasort_test

import (
	"fmt"

	"github.com/matzehuels/teasort/pkg/teasort"
)

func ExampleSort() {
	values := []int{5, 3, 4, 1, 2}
	cost, err := teasort.Sort(teasort.NewSource(42), values)
	if err != nil {
		panic(err)
	}
	fmt.Println(values)
	fmt.Println("cost covers the edge budget:", cost >= teasort.EdgeBudget(len(values)))
	// Output:
	// [1 2 3 4 5]
	// cost covers the edge budget: true
}

func ExampleSortWithStats() {
	values := []string{"delta", "alpha", "charlie", "bravo"}
	st, err := teasort.SortWithStats(teasort.NewSource(1), values)
	if err != nil {
		panic(err)
	}
	fmt.Println(values)
	fmt.Println("edges:", st.Edges)
	fmt.Println("cost = edges + comparisons:", st.Cost == st.Edges+st.Comparisons)
	// Output:
	// [alpha bravo charlie delta]
	// edges: 16
	// cost = edges + comparisons: true
}

func ExampleEdgeBudget() {
	for _, n := range []int{1, 4, 5, 1024} {
		fmt.Println(n, teasort.EdgeBudget(n))
	}
	// Output:
	// 1 0
	// 4 16
	// 5 20
	// 1024 20480
}

func ExampleBuild() {
	g, err := teasort.Build(teasort.NewSource(7), []int{3, 1, 2})
	if err != nil {
		panic(err)
	}
	fmt.Println("vertices:", g.Len())
	fmt.Println("edges:", g.EdgeCount())
	// Output:
	// vertices: 3
	// edges: 6
}
