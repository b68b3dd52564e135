// Package semantic contains the concrete SemanticStore implementation. The
// store interface and its value types reside in the core package. Import
// github.com/hupe1980/agentmemory/core and depend on core.SemanticStore in
// your code; select an implementation at wiring time.
//
// Unlike episodic storage, semantic knowledge is aggregated: individual task
// episodes fall out of the bounded log while their success/failure counts and
// preference scores accumulate here for the lifetime of the store.
package semantic
