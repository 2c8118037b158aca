// Package mcp implements the Model Context Protocol server for cratedocs.
//
// The mcp package provides:
// - An MCP stdio server for agent and editor integration
// - Tool definitions for crate, item, and search lookups
package mcp
