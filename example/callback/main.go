package main

import (
	"context"
	"fmt"
	"log"

	networksecurity "github.com/SaiBhavadeesh/network-security"
)

func main() {
	flow, err := networksecurity.Conf("../../configs/pipeline.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	callback := func(e networksecurity.CatalogEntry) error {
		fmt.Printf("%s run=%s stage=%s artifact=%v\n",
			e.RecordedAt.Format("15:04:05"),
			e.RunID,
			e.Stage,
			e.Artifact,
		)
		return nil
	}

	if _, err := flow.Run(context.Background(), networksecurity.PublishCallback("stdout", callback)); err != nil {
		log.Fatalf("training pipeline failed: %v", err)
	}
}
