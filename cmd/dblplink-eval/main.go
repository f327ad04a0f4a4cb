// dblplink-eval: evaluation harness for a running dblplink server.
//
// Takes a DBLP-QuAD style question file, links every question through
// the server's /link_entities endpoint and reports F1, MRR and Hits@k
// against the gold entities.
//
// Run with --help to see command-line usage.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/cheggaaa/pb"
	"gopkg.in/alecthomas/kingpin.v1"

	"github.com/semantic-systems/dblplink-2.0/client"
	"github.com/semantic-systems/dblplink-2.0/eval"
)

var (
	dataset = kingpin.Arg("dataset", "path to questions file").Required().String()
	api     = kingpin.Flag("api",
		"base URL of the dblplink server").Default("http://localhost:5002").String()
	limit = kingpin.Flag("limit",
		"number of questions to evaluate; 0 for all").Default("100").Int()
	textMatch = kingpin.Flag("textmatch",
		"skip reranking, keep retrieval order").Bool()
	verbose = kingpin.Flag("verbose", "log per-question metrics").Bool()
)

func main() {
	kingpin.Parse()

	log.SetPrefix("dblplink-eval ")

	questions, err := eval.Load(*dataset)
	if err != nil {
		log.Fatal(err)
	}
	if *limit > 0 && len(questions) > *limit {
		questions = questions[:*limit]
	}
	log.Printf("evaluating %d questions against %s", len(questions), *api)

	c := client.New(*api)
	var agg eval.Aggregate

	bar := pb.StartNew(len(questions))
	for _, q := range questions {
		result, err := c.Link(context.Background(), q.Text, *textMatch)
		if err != nil {
			log.Fatalf("%q: %v", q.Text, err)
		}
		agg.Add(result, q.Entities)

		if *verbose {
			log.Printf("%q: F1 %.4f MRR %.4f (running)",
				q.Text, agg.F1(), agg.MRR())
		}
		bar.Increment()
	}
	bar.Finish()

	fmt.Println("\nEvaluation Results:")
	fmt.Printf("F1:       %.4f\n", agg.F1())
	fmt.Printf("MRR:      %.4f\n", agg.MRR())
	fmt.Printf("Hits@1:   %.4f\n", agg.Hits(1))
	fmt.Printf("Hits@5:   %.4f\n", agg.Hits(5))
	fmt.Printf("Hits@10:  %.4f\n", agg.Hits(10))
}
