// dblplink-web: demo web frontend for the dblplink server.
//
// Serves a single page where a question can be typed or picked from
// examples; the linking pipeline runs stage by stage against the
// backend, and detected spans, fetched candidates and the final ranking
// are shown in tables.
//
// Run with --help to see command-line usage.
package main

import (
	"log"

	"gopkg.in/alecthomas/kingpin.v1"

	"github.com/semantic-systems/dblplink-2.0/client"
)

var (
	addr = kingpin.Flag("http",
		"address to serve the frontend on").Default(":3001").String()
	backend = kingpin.Flag("backend",
		"base URL of the dblplink server").Default("http://localhost:8001").String()
)

func main() {
	kingpin.Parse()

	log.SetPrefix("dblplink-web ")
	log.Printf("serving on %s, backend at %s", *addr, *backend)
	log.Fatal(frontendServer(*addr, client.New(*backend)))
}
