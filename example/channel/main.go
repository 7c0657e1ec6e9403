package main

import (
	"context"
	"fmt"
	"log"
	"sync"

	networksecurity "github.com/SaiBhavadeesh/network-security"
)

func main() {
	flow, err := networksecurity.Conf("../../configs/pipeline.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	cat, entries, closeEntries := networksecurity.NewChannelCatalog("fanout", 3)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		forwardWorker("artifacts", entries)
	}()

	_, err = flow.Run(context.Background(), networksecurity.PublishCatalog(cat))
	closeEntries()
	wg.Wait()
	if err != nil {
		log.Fatalf("training pipeline failed: %v", err)
	}
}

func forwardWorker(name string, entries <-chan networksecurity.CatalogEntry) {
	for e := range entries {
		fmt.Printf("[%s] %s finished for run %s\n", name, e.Stage, e.RunID)
	}
}
