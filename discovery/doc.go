// Package discovery turns HuggingFace Hub search results into catalog
// entries for the oi model-selection CLI.
//
// The package has three parts, composed as a pipeline:
//
//  1. The query planner maps a memory budget and a list of organizations to
//     a bounded set of registry searches (PlanQueries, KeywordQuery).
//  2. The estimator guesses a parameter count from a repository id and
//     derives a quantized footprint, rejecting candidates that cannot fit
//     the budget (Estimator, ParseParamBillions).
//  3. The normalizer classifies a repository's raw file listing, folds
//     sharded files into single artifacts, extracts quantization tags and
//     picks a representative artifact (Normalize, SelectRepresentative).
//
// Fetcher, Searcher and ListFiles run these parts against a Hub. All calls
// are sequential; the only state carried across a pass is the Dedup table
// owned by the caller of a single Fetch.
//
// Size figures are heuristics. Nothing here measures a model.
package discovery
