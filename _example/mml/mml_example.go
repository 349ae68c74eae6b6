package main

import (
	"fmt"
	"log"

	"github.com/tildegen/tildegen/mml"
	"github.com/tildegen/tildegen/pipeline"
	"github.com/tildegen/tildegen/sexpr"
)

const page = `~sec[l=1]~Numbers
~eval
(__native__.def answer 42)
(__native__.buf "the answer is " answer)
~eval~
`

func main() {
	doc, err := mml.Parse(page)
	if err != nil {
		log.Fatal("parse: ", err)
	}

	for i, elem := range doc.Elements {
		fmt.Printf("element %d: %q\n", i, elem.OrigText())
	}

	out, err := pipeline.NewRenderer(sexpr.NewContext(), []string{"eval"}).RenderDocument(doc)
	if err != nil {
		log.Fatal("render: ", err)
	}
	fmt.Print(out)
}
