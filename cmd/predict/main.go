package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"strconv"

	"github.com/priyanshu-naveen/Coffee-Shop-Prediction/ml"
)

func main() {
	modelPath := flag.String("model_path", "model.json", "model artifact path")
	values := make(map[string]*string)
	for _, spec := range ml.Schema() {
		def := strconv.FormatFloat(spec.Default, 'f', -1, 64)
		values[spec.Key] = flag.String(spec.Key, def, fmt.Sprintf("%s [%g, %g]. %s", spec.Label, spec.Min, spec.Max, spec.Help))
	}
	flag.Parse()

	record := ml.CollectFeatures(func(key string) string {
		if v, ok := values[key]; ok {
			return *v
		}
		return ""
	})

	model, err := ml.LoadModel(ml.ResolveArtifactPath(*modelPath))
	if err != nil {
		if errors.Is(err, ml.ErrArtifactMissing) {
			log.Fatal(err)
		}
		log.Fatalf("failed to load model: %v", err)
	}

	revenue, err := ml.Predict(model, record)
	if err != nil {
		log.Fatalf("failed to predict: %v", err)
	}

	fmt.Printf("Estimated Daily Revenue: %s\n", ml.FormatCurrency(revenue))
	fmt.Println(ml.Insight(record, revenue))
}
