package main

import (
	"fmt"
	"log"

	"github.com/tildegen/tildegen/sexpr"
)

func main() {
	ctx := sexpr.NewContext()

	res, err := ctx.Eval(`
(__native__.def greet (__native__.fn [name]
	(__native__.str "Hello, " name "!")))
(__native__.buf (greet "ducks"))
(__native__.add 8 5)`)
	if err != nil {
		log.Fatal("eval: ", err)
	}

	fmt.Printf("result: %v\n", res)
	fmt.Printf("buffer: %s\n", ctx.PullBuffer())
}
