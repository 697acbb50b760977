// Package writers turns the score table into serialized outputs.
//
// Design:
//   • Writers own all presentation knowledge (TSV/CSV/JSON/JSONL).
//   • Stages stay domain-only; the app stays orchestration-only.
//   • JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
