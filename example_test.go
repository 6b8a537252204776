package singleton_test

import (
	"fmt"
	"github.com/joeycumines/go-singleton"
	"sync"
)

// Demonstrates eager construction, and the two closure-based access
// mechanisms.
func ExampleNew() {
	counter := singleton.New(10)

	counter.Update(func(v *int) { *v += 5 })

	fmt.Println(singleton.View(counter, func(v int) int { return v }))

	//output:
	//15
}

// Demonstrates lazy construction, which runs the constructor on first
// access, exactly once, no matter how many goroutines race to be first.
func ExampleNewLazy() {
	type config struct {
		Addr    string
		Retries int
	}

	cfg := singleton.NewLazy(func() config {
		fmt.Println("constructed")
		return config{Addr: "localhost:8080", Retries: 3}
	})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cfg.View(func(c config) {})
		}()
	}
	wg.Wait()

	fmt.Println(singleton.View(cfg, func(c config) string { return c.Addr }))

	//output:
	//constructed
	// localhost:8080
}

// Demonstrates returning a result from a mutating closure, e.g. implementing
// an atomic increment-and-get.
func ExampleUpdate() {
	counter := singleton.New(0)

	next := func() int {
		return singleton.Update(counter, func(v *int) int {
			*v++
			return *v
		})
	}

	fmt.Println(next())
	fmt.Println(next())
	fmt.Println(next())

	//output:
	//1
	//2
	//3
}
