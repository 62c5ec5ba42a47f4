// Package wikirt is the round-trip core of a bidirectional wikitext↔HTML
// converter.
//
// # Forward direction
//
// Wikitext arrives as a token stream (the tokenizer itself is an external
// collaborator) and is rewritten by a pipeline: an ordered chain of stateful
// Transformer stages. Nested expansions spawn child pipelines whose
// completion order is unconstrained; the Reconciler replays a flat event log
// of such pipelines deterministically, per-pipeline in order, pipelines in
// ascending id order.
//
//	env, _ := wikirt.NewEnv(nil)
//	chain, _ := wikirt.NewChain(env, "QuoteTransformer")
//	out := chain.Process(toks, &wikirt.TransformOptions{})
//
// # Reverse direction
//
// An HTML-like document tree is walked back into source text. Between every
// pair of adjacent nodes the serializer combines the left node's After
// constraint with the right node's Before constraint to decide the exact
// number of separating newlines, reproducing the original whitespace or
// minimally diffing it. Marker nodes (placeholders, transclusion
// boundaries, page properties, diff markers) dispatch on a declarative
// category table instead of serializing literally.
//
// # Conformance replay
//
// Transcript files record token batches entering and leaving pipelines in
// two dialects (hand-written and generated). The replay oracle re-runs each
// batch through a fresh chain and compares output strings exactly, after a
// small normalization. See cmd/wikirt for the driver.
package wikirt
