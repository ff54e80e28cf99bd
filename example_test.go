package streamkm_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/streamkm"
)

func Example() {
	ctx := context.Background()

	skm, err := streamkm.New(2, 2)
	if err != nil {
		log.Fatal(err)
	}

	labels, err := skm.Update(ctx, [][]float64{
		{0.1, 0.2},
		{0.0, 0.1},
		{5.0, 5.1},
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("labels:", len(labels))
	fmt.Println("clusters:", skm.K())
	// Output:
	// labels: 3
	// clusters: 2
}

func Example_forgetful() {
	ctx := context.Background()

	// alpha < 1 discounts old batches at batch granularity: each committed
	// batch pulls a hit cluster's center halfway to the batch mean.
	skm, err := streamkm.New(4, 8,
		streamkm.WithAlpha(0.5),
		streamkm.WithMaxIterations(2),
		streamkm.WithInitMode(streamkm.InitUniformPositive),
	)
	if err != nil {
		log.Fatal(err)
	}

	batch := make([][]float64, 16)
	for i := range batch {
		vec := make([]float64, 8)
		for j := range vec {
			vec[j] = float64(i%4) / 4
		}
		batch[i] = vec
	}

	labels, err := skm.Update(ctx, batch)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("labels:", len(labels))
	fmt.Println("state:", skm.State())
	// Output:
	// labels: 16
	// state: running
}
