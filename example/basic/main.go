package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	networksecurity "github.com/SaiBhavadeesh/network-security"
)

func main() {
	flow, err := networksecurity.Conf("../../configs/pipeline.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := flow.Ingest(networksecurity.IngestCSV("../../Network_Data/phisingData.csv")).Run(ctx)
	if err != nil {
		log.Fatalf("training pipeline failed: %v", err)
	}
	fmt.Println(res.Transformation)
}
