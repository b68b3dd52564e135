package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/hupe1980/agentmemory"
	"github.com/hupe1980/agentmemory/logging"
	"github.com/hupe1980/agentmemory/persist"
)

// openMemory binds a Memory instance to the configured data directory. The
// snapshot load at construction restores whatever earlier commands saved.
func openMemory(cfg *config) (*agentmemory.Memory, error) {
	format, err := persist.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	return agentmemory.New(func(o *agentmemory.Options) {
		o.StorageDir = cfg.DataDir
		o.Format = format
		o.EpisodicCapacity = cfg.Capacity
		o.PatternCap = cfg.PatternCap
		o.Logger = logging.NewSlogLogger(parseLogLevel(cfg.LogLevel), cfg.LogFormat, false)
	})
}

// renderTable prints a go-pretty table with the given header and rows.
func renderTable(header table.Row, rows []table.Row) {
	w := table.NewWriter()
	w.AppendHeader(header)
	w.AppendRows(rows)
	fmt.Println(w.Render())
}
