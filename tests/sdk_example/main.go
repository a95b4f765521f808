package main

import (
	"context"
	"fmt"
	"os"

	"github.com/osvaldoandrade/datasetdb/pkg/datasetdbsdk"
)

func main() {
	dbPath := os.Getenv("DATASETDB_PATH")
	if dbPath == "" {
		fmt.Fprintln(os.Stderr, "DATASETDB_PATH is required (path to the SQLite database)")
		os.Exit(1)
	}

	ctx := context.Background()
	client, err := datasetdbsdk.Open(ctx, datasetdbsdk.DefaultConfig(dbPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "open: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	document := []byte(`{
		"name": "moods",
		"public": true,
		"classes": [
			{"name": "calm", "recordings": ["e5e36093-6c18-4b40-9fc5-0f39b2a1bfd5"]},
			{"name": "energetic", "recordings": ["1c8b3c17-09c1-4b33-be5c-0bddba6c47e1"]}
		]
	}`)

	id, err := client.Create(ctx, document, "example-user")
	if err != nil {
		fmt.Fprintf(os.Stderr, "create: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("created dataset %s\n", id)

	ds, err := client.Get(ctx, id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "get: %v\n", err)
		os.Exit(1)
	}
	for _, cls := range ds.Classes {
		fmt.Printf("class %s has %d recordings\n", cls.Name, len(cls.Recordings))
	}

	summaries, err := client.List(ctx, "example-user", false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "list: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("user owns %d dataset(s)\n", len(summaries))
}
