// Package mcp публикует каталог руководств как инструменты MCP:
// поиск, чтение страницы и фильтр оглавления.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"manualdesk/internal/logger"
	"manualdesk/internal/services"
)

const Version = "0.1.0"

type SearchManualsRequest struct {
	MachineID string `json:"machineId"`
	Query     string `json:"query"`
	ManualID  string `json:"manualId"`
}

type GetPageRequest struct {
	PageID string `json:"pageId"`
}

type FilterTocRequest struct {
	ManualID string `json:"manualId"`
	Query    string `json:"query"`
}

// NewServer регистрирует инструменты поверх сервисов каталога и поиска.
func NewServer(catalog *services.CatalogService, search *services.SearchService) *server.MCPServer {
	s := server.NewMCPServer(
		"Manual Desk MCP",
		Version,
		server.WithToolCapabilities(false),
	)

	s.AddTool(mcp.NewTool("search_manuals",
		mcp.WithDescription("Full-text search over the manuals of a machine. Returns matching pages with highlighted snippets."),
		mcp.WithString("machineId", mcp.Required(), mcp.Description("Machine id, e.g. 'exc-5000'")),
		mcp.WithString("query", mcp.Required(), mcp.Description("Text to search for")),
		mcp.WithString("manualId", mcp.Description("Restrict the search to one manual")),
	), mcp.NewTypedToolHandler(searchManualsHandler(search)))

	s.AddTool(mcp.NewTool("get_page",
		mcp.WithDescription("Get a manual page by id: title, kind and HTML content"),
		mcp.WithString("pageId", mcp.Required(), mcp.Description("Page id from a table of contents or a search result")),
	), mcp.NewTypedToolHandler(getPageHandler(catalog)))

	s.AddTool(mcp.NewTool("filter_toc",
		mcp.WithDescription("Filter the table of contents of a manual by title; ancestors of matching nodes are kept"),
		mcp.WithString("manualId", mcp.Required(), mcp.Description("Manual id")),
		mcp.WithString("query", mcp.Description("Title filter; empty returns the full table of contents")),
	), mcp.NewTypedToolHandler(filterTocHandler(catalog)))

	return s
}

// NewHTTPServer — streamable HTTP транспорт на endpoint.
func NewHTTPServer(s *server.MCPServer, endpoint string) *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(s, server.WithEndpointPath(endpoint))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func searchManualsHandler(search *services.SearchService) func(context.Context, mcp.CallToolRequest, SearchManualsRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, _ mcp.CallToolRequest, args SearchManualsRequest) (*mcp.CallToolResult, error) {
		if args.MachineID == "" {
			return mcp.NewToolResultError("machineId is required"), nil
		}
		if args.Query == "" {
			return mcp.NewToolResultError("query is required"), nil
		}
		results, err := search.Search(ctx, args.MachineID, args.ManualID, args.Query)
		if err != nil {
			logger.WithCtx(ctx).Warn("mcp: search_manuals", zap.Error(err))
			return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
		}
		return jsonResult(results)
	}
}

func getPageHandler(catalog *services.CatalogService) func(context.Context, mcp.CallToolRequest, GetPageRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, _ mcp.CallToolRequest, args GetPageRequest) (*mcp.CallToolResult, error) {
		if args.PageID == "" {
			return mcp.NewToolResultError("pageId is required"), nil
		}
		page, err := catalog.Page(ctx, args.PageID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to get page: %v", err)), nil
		}
		return jsonResult(page)
	}
}

func filterTocHandler(catalog *services.CatalogService) func(context.Context, mcp.CallToolRequest, FilterTocRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, _ mcp.CallToolRequest, args FilterTocRequest) (*mcp.CallToolResult, error) {
		if args.ManualID == "" {
			return mcp.NewToolResultError("manualId is required"), nil
		}
		nodes, err := catalog.ManualTOC(ctx, args.ManualID, args.Query)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to filter toc: %v", err)), nil
		}
		return jsonResult(nodes)
	}
}
