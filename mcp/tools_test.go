package mcp

import (
	"context"
	"testing"

	"github.com/d6e/cratedocs/api"
	mcpgo "github.com/mark3labs/mcp-go/mcp"
)

func TestInitTools(t *testing.T) {
	tools := InitTools(api.NewClient())

	want := []string{"lookup_crate", "lookup_item", "search_crates"}
	if len(tools) != len(want) {
		t.Fatalf("InitTools() returned %d tools, want %d", len(tools), len(want))
	}

	for i, name := range want {
		if tools[i].Tool.Name != name {
			t.Errorf("tool %d = %s, want %s", i, tools[i].Tool.Name, name)
		}
		if tools[i].Handler == nil {
			t.Errorf("tool %s has no handler", name)
		}
	}
}

func TestLookupCrateRejectsMissingArguments(t *testing.T) {
	_, handler := LookupCrate(api.NewClient())

	req := mcpgo.CallToolRequest{}
	req.Params.Name = "lookup_crate"
	req.Params.Arguments = map[string]any{}

	res, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("handler error = %v, want validation error inside the result", err)
	}
	if !res.IsError {
		t.Error("handler accepted a request without crate_name")
	}
}

func TestSearchCratesRejectsNegativeLimit(t *testing.T) {
	_, handler := SearchCrates(api.NewClient())

	req := mcpgo.CallToolRequest{}
	req.Params.Name = "search_crates"
	req.Params.Arguments = map[string]any{
		"query": "tokio",
		"limit": -1,
	}

	res, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("handler error = %v, want validation error inside the result", err)
	}
	if !res.IsError {
		t.Error("handler accepted a negative limit")
	}
}
