// Package core contains pipeline plumbing utilities: channel helpers, worker
// configuration via context, and the locomotive that drives stages. It does
// not define result semantics; instead it provides the scaffolding for lite
// pipelines and for the bounded fan-out in async.
package core
