package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/mood"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListEntriesTool(srv, svc)
	registerGetEntryTool(srv, svc)
	registerAddEntryTool(srv, svc)
	registerUpdateEntryTool(srv, svc)
	registerDeleteEntryTool(srv, svc)
	registerMoodStatsTool(srv, svc)
}

func registerListEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_entries",
		mcp.WithDescription("List mood entries, newest first, optionally filtered by activity text and mood."),
		mcp.WithString("search",
			mcp.Description("Case-insensitive text matched against activities."),
		),
		mcp.WithString("mood",
			mcp.Description("Mood category to keep."),
			mcp.Enum(mood.Options()...),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries to return (default 50)."),
			mcp.Min(1),
			mcp.Max(500),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		search := request.GetString("search", "")
		category := request.GetString("mood", mood.All)
		limit := request.GetInt("limit", 50)

		results, err := svc.ListEntries(ctx, search, category, limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"search":  search,
			"mood":    category,
			"entries": results,
			"count":   len(results),
		})
	})
}

func registerGetEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_entry",
		mcp.WithDescription("Fetch a single mood entry by identifier."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to fetch."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.EntryByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerAddEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_entry",
		mcp.WithDescription("Record today's mood with up to four activities."),
		mcp.WithString("mood",
			mcp.Required(),
			mcp.Description("The mood to record."),
			mcp.Enum(mood.Labels()...),
		),
		mcp.WithString("activities",
			mcp.Description("Comma separated activities, for example \"Reading, Walking\"."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Mood       string `json:"mood"`
			Activities string `json:"activities"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.AddEntry(ctx, strings.TrimSpace(args.Mood), app.ParseActivities(args.Activities))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_entry",
		mcp.WithDescription("Change the mood and/or activities of an existing entry."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to modify."),
		),
		mcp.WithString("mood",
			mcp.Description("New mood."),
			mcp.Enum(mood.Labels()...),
		),
		mcp.WithString("activities",
			mcp.Description("Comma separated activities replacing the current list. Send an empty string to clear them."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var opts app.EditOptions
		args := request.GetArguments()
		if v, ok := args["mood"].(string); ok && v != "" {
			opts.Mood = &v
		}
		if v, ok := args["activities"].(string); ok {
			activities := app.ParseActivities(v)
			opts.Activities = &activities
		}

		dto, err := svc.UpdateEntry(ctx, id, opts)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_entry",
		mcp.WithDescription("Delete a mood entry."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.DeleteEntry(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"deleted": dto,
		})
	})
}

func registerMoodStatsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"mood_stats",
		mcp.WithDescription("Count entries per mood and the most frequent activities."),
		mcp.WithString("search",
			mcp.Description("Optional activity text filter."),
		),
		mcp.WithString("mood",
			mcp.Description("Optional mood category filter."),
			mcp.Enum(mood.Options()...),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		st, err := svc.Stats(ctx, request.GetString("search", ""), request.GetString("mood", mood.All))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(st)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
