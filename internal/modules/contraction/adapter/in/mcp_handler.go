package in

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"labortimer/internal/modules/contraction/dto"
	contractionin "labortimer/internal/modules/contraction/port/in"
)

type MCPHandler struct {
	usecase contractionin.Usecase
}

func NewMCPHandler(usecase contractionin.Usecase) MCPHandler {
	return MCPHandler{usecase: usecase}
}

type setNameArgs struct {
	Name string `json:"name"`
}

type setIDArgs struct {
	SetID string `json:"set_id"`
}

// Register adds the timer tools to srv. Every result is JSON text content;
// usecase errors come back as tool errors.
func (h MCPHandler) Register(srv *mcp.Server) {
	noArgs := objectSchema(map[string]any{}, nil)

	h.add(srv, "contraction_start", "Start timing a new contraction. Replaces any contraction already in progress.", noArgs,
		func(ctx context.Context, _ json.RawMessage) (any, error) {
			return h.usecase.Start(ctx)
		})
	h.add(srv, "contraction_end", "End the contraction in progress and add it to the history.", noArgs,
		func(ctx context.Context, _ json.RawMessage) (any, error) {
			return h.usecase.End(ctx)
		})
	h.add(srv, "contraction_status", "Report whether a contraction is in progress and for how long.", noArgs,
		func(ctx context.Context, _ json.RawMessage) (any, error) {
			return h.usecase.Status(ctx)
		})
	h.add(srv, "contraction_stats", "Average duration, average interval, total span and 5-1-1 indicators.", noArgs,
		func(ctx context.Context, _ json.RawMessage) (any, error) {
			return h.usecase.Stats(ctx)
		})
	h.add(srv, "contraction_history", "List recorded contractions, most recent first.", noArgs,
		func(ctx context.Context, _ json.RawMessage) (any, error) {
			history, err := h.usecase.History(ctx)
			if err != nil {
				return nil, err
			}
			return map[string]any{"contractions": history}, nil
		})
	h.add(srv, "set_save", "Save the current history as a named set.",
		objectSchema(map[string]any{
			"name": map[string]any{"type": "string", "description": "Set name; defaults to \"Set N\""},
		}, nil),
		func(ctx context.Context, raw json.RawMessage) (any, error) {
			var args setNameArgs
			if err := decodeArgs(raw, &args); err != nil {
				return nil, err
			}
			return h.usecase.SaveSet(ctx, dto.SaveSetInput{Name: args.Name})
		})
	h.add(srv, "set_list", "List saved sets, most recent first.", noArgs,
		func(ctx context.Context, _ json.RawMessage) (any, error) {
			sets, err := h.usecase.ListSets(ctx)
			if err != nil {
				return nil, err
			}
			return map[string]any{"sets": sets}, nil
		})
	h.add(srv, "set_load", "Replace the current history with a saved set.",
		objectSchema(map[string]any{
			"set_id": map[string]any{"type": "string", "description": "Id of the saved set"},
		}, []string{"set_id"}),
		func(ctx context.Context, raw json.RawMessage) (any, error) {
			var args setIDArgs
			if err := decodeArgs(raw, &args); err != nil {
				return nil, err
			}
			return h.usecase.LoadSet(ctx, args.SetID)
		})
}

func (h MCPHandler) add(srv *mcp.Server, name, description string, schema map[string]any, run func(context.Context, json.RawMessage) (any, error)) {
	srv.AddTool(&mcp.Tool{Name: name, Description: description, InputSchema: schema},
		func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			resp, err := run(ctx, req.Params.Arguments)
			if err != nil {
				var res mcp.CallToolResult
				res.SetError(err)
				return &res, nil
			}
			data, err := json.Marshal(resp)
			if err != nil {
				var res mcp.CallToolResult
				res.SetError(fmt.Errorf("marshal: %w", err))
				return &res, nil
			}
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
			}, nil
		})
}

func objectSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func decodeArgs(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}
