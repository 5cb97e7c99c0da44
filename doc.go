// Package nereval scores named-entity predictions at the entity level.
//
// # Quick Start
//
//	ev, err := nereval.New(nereval.WithNumLabels(3))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := ev.Evaluate(ctx, nereval.Batch{
//	    Contexts:  contexts,
//	    Gold:      gold,
//	    Predicted: predicted,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("micro F1: %.4f\n", res.MicroF1())
//
// # Contexts
//
// Each row of a batch is one context: a sub-word sequence paired with a single
// candidate entity type. Decoded spans take their type from the context. A
// batch without contexts types every span as "TAG".
//
// # Thread Safety
//
// Evaluator is safe for concurrent use. Each call splits its contexts into
// shards scored on up to WithWorkers goroutines.
package nereval
