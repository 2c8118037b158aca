package mcp

import (
	"context"
	"encoding/json"

	"github.com/d6e/cratedocs/api"
	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

var validate = validator.New()

// InitTools builds the documentation tools backed by client
func InitTools(client *api.Client) []server.ServerTool {
	tools := []server.ServerTool{}

	tools = append(tools, newServerTool(LookupCrate(client)))
	tools = append(tools, newServerTool(LookupItem(client)))
	tools = append(tools, newServerTool(SearchCrates(client)))

	return tools
}

// LookupCrate returns the lookup_crate tool: crate-level documentation as
// markdown (metadata plus README).
func LookupCrate(client *api.Client) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool(
			"lookup_crate",
			mcp.WithDescription("Look up documentation for a Rust crate (returns markdown)"),
			mcp.WithString("crate_name", mcp.Required(), mcp.Description("The name of the crate to look up")),
			mcp.WithString("version", mcp.Description("The version of the crate (optional, defaults to latest)")),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			type ToolArguments struct {
				CrateName string `json:"crate_name" mapstructure:"crate_name" validate:"required"`
				Version   string `json:"version" mapstructure:"version" validate:"omitempty"`
			}
			var args ToolArguments
			if err := mapstructure.Decode(req.Params.Arguments, &args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if err := validate.StructCtx(ctx, args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			doc, err := client.CrateDoc(ctx, args.CrateName, args.Version)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			return mcp.NewToolResultText(doc), nil
		}
}

// LookupItem returns the lookup_item tool: documentation for a single item
// (struct, enum, trait, fn or macro) within a crate.
func LookupItem(client *api.Client) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool(
			"lookup_item",
			mcp.WithDescription("Look up documentation for a specific item in a Rust crate (returns markdown)"),
			mcp.WithString("crate_name", mcp.Required(), mcp.Description("The name of the crate")),
			mcp.WithString("item_path", mcp.Required(),
				mcp.Description("Path to the item (e.g. 'vec::Vec' or 'crate_name::vec::Vec' - the crate prefix is stripped automatically)")),
			mcp.WithString("version", mcp.Description("The version of the crate (optional, defaults to latest)")),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			type ToolArguments struct {
				CrateName string `json:"crate_name" mapstructure:"crate_name" validate:"required"`
				ItemPath  string `json:"item_path" mapstructure:"item_path" validate:"required"`
				Version   string `json:"version" mapstructure:"version" validate:"omitempty"`
			}
			var args ToolArguments
			if err := mapstructure.Decode(req.Params.Arguments, &args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if err := validate.StructCtx(ctx, args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			doc, err := client.LookupItem(ctx, args.CrateName, args.ItemPath, args.Version)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			return mcp.NewToolResultText(doc), nil
		}
}

// SearchCrates returns the search_crates tool: crates.io search results as
// JSON.
func SearchCrates(client *api.Client) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool(
			"search_crates",
			mcp.WithDescription("Search for Rust crates on crates.io (returns JSON)"),
			mcp.WithString("query", mcp.Required(), mcp.Description("The search query")),
			mcp.WithNumber("limit", mcp.Description("Maximum number of results to return (optional, defaults to 10, max 100)")),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			type ToolArguments struct {
				Query string `json:"query" mapstructure:"query" validate:"required"`
				Limit int    `json:"limit" mapstructure:"limit" validate:"omitempty,min=0"`
			}
			var args ToolArguments
			if err := mapstructure.Decode(req.Params.Arguments, &args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if err := validate.StructCtx(ctx, args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			results, err := client.SearchCrates(ctx, args.Query, args.Limit)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			b, err := json.Marshal(results)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			return mcp.NewToolResultText(string(b)), nil
		}
}
