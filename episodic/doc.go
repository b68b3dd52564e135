// Package episodic contains the concrete EpisodicStore implementation. The
// store interface and Episode type reside in the core package. Import
// github.com/hupe1980/agentmemory/core and depend on core.EpisodicStore in
// your code; select an implementation (like the bounded in‑memory store below)
// at wiring time.
//
// Rationale: keeps domain contracts centralized while allowing pluggable
// backends (append‑only files, embedded databases, etc.) to be added without
// introducing dependency cycles.
package episodic
