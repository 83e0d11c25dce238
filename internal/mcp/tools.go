// ABOUTME: MCP tool definitions and handlers
// ABOUTME: Provides fuel tracking operations for AI agents

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harper/fueltrack/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	s.registerFuelStatusTool()
	s.registerAddDistanceTool()
	s.registerAddFillUpTool()
	s.registerListFillUpsTool()
	s.registerRemoveFillUpTool()
	s.registerSyncNowTool()
}

// StatusOutput defines output for the fuel_status tool.
type StatusOutput struct {
	FuelLeftL           float64 `json:"fuel_left_l"`
	TankCapacityL       float64 `json:"tank_capacity_l"`
	AvgKmPerL           float64 `json:"avg_km_per_l"`
	SampleCount         int     `json:"sample_count"`
	RangeKm             float64 `json:"range_km"`
	OdometerKm          float64 `json:"odometer_km"`
	LowRangeThresholdKm float64 `json:"low_range_threshold_km"`
	LowRange            bool    `json:"low_range"`
}

// FuelStatusInput is empty but required for type.
type FuelStatusInput struct{}

func (s *Server) registerFuelStatusTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "fuel_status",
		Description: "Get the vehicle's current fuel level, efficiency, estimated range, and odometer.",
		InputSchema: map[string]interface{}{
			"type": "object",
		},
	}, s.handleFuelStatus)
}

func (s *Server) handleFuelStatus(_ context.Context, req *mcp.CallToolRequest, input FuelStatusInput) (*mcp.CallToolResult, StatusOutput, error) {
	output := s.statusOutput()
	jsonBytes, _ := json.MarshalIndent(output, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}, output, nil
}

func (s *Server) statusOutput() StatusOutput {
	state := s.engine.Snapshot()
	return StatusOutput{
		FuelLeftL:           state.FuelLeftL,
		TankCapacityL:       state.TankCapacityL,
		AvgKmPerL:           state.AvgKmPerL,
		SampleCount:         state.SampleCount,
		RangeKm:             state.RangeKm(),
		OdometerKm:          state.OdometerKm,
		LowRangeThresholdKm: state.LowRangeThresholdKm,
		LowRange:            state.RangeKm() < state.LowRangeThresholdKm,
	}
}

// AddDistanceInput defines input for the add_distance tool.
type AddDistanceInput struct {
	Km float64 `json:"km"`
}

func (s *Server) registerAddDistanceTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "add_distance",
		Description: "Record driven distance in kilometers. Advances the odometer and depletes estimated fuel.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"km": map[string]interface{}{
					"type":        "number",
					"description": "Distance driven in kilometers (must be positive)",
				},
			},
			"required": []string{"km"},
		},
	}, s.handleAddDistance)
}

func (s *Server) handleAddDistance(_ context.Context, req *mcp.CallToolRequest, input AddDistanceInput) (*mcp.CallToolResult, StatusOutput, error) {
	if err := s.engine.AddDistance(input.Km); err != nil {
		return nil, StatusOutput{}, fmt.Errorf("failed to add distance: %w", err)
	}

	output := s.statusOutput()
	jsonBytes, _ := json.MarshalIndent(output, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}, output, nil
}

// AddFillUpInput defines input for the add_fill_up tool.
type AddFillUpInput struct {
	Liters    float64 `json:"liters"`
	PricePerL float64 `json:"price_per_l"`
	FuelType  string  `json:"fuel_type"`
	TankFull  bool    `json:"tank_full"`
}

// FillUpOutput defines output for fill-up tools.
type FillUpOutput struct {
	ID         string    `json:"id"`
	Date       time.Time `json:"date"`
	Liters     float64   `json:"liters"`
	PricePerL  float64   `json:"price_per_l"`
	FuelType   string    `json:"fuel_type"`
	TankFull   bool      `json:"tank_full"`
	OdometerKm float64   `json:"odometer_km"`
	TotalCost  float64   `json:"total_cost"`
}

func fillUpOutput(f *models.FillUp) FillUpOutput {
	return FillUpOutput{
		ID:         f.ID.String(),
		Date:       f.Date,
		Liters:     f.Liters,
		PricePerL:  f.PricePerL,
		FuelType:   string(f.FuelType),
		TankFull:   f.TankFull,
		OdometerKm: f.OdometerKm,
		TotalCost:  f.TotalCost(),
	}
}

func (s *Server) registerAddFillUpTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "add_fill_up",
		Description: "Record a fuel purchase. A full tank closes a full-to-full efficiency sample.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"liters": map[string]interface{}{
					"type":        "number",
					"description": "Liters purchased (must be positive)",
				},
				"price_per_l": map[string]interface{}{
					"type":        "number",
					"description": "Price paid per liter (must be positive)",
				},
				"fuel_type": map[string]interface{}{
					"type":        "string",
					"description": "Fuel type: gasoline, ethanol, or diesel",
				},
				"tank_full": map[string]interface{}{
					"type":        "boolean",
					"description": "Whether the tank was filled to the top",
				},
			},
			"required": []string{"liters", "price_per_l", "fuel_type"},
		},
	}, s.handleAddFillUp)
}

func (s *Server) handleAddFillUp(ctx context.Context, req *mcp.CallToolRequest, input AddFillUpInput) (*mcp.CallToolResult, FillUpOutput, error) {
	fuelType, err := models.ParseFuelType(input.FuelType)
	if err != nil {
		return nil, FillUpOutput{}, err
	}

	f, err := s.engine.RegisterFillUp(input.Liters, input.PricePerL, fuelType, input.TankFull)
	if err != nil {
		return nil, FillUpOutput{}, fmt.Errorf("failed to register fill-up: %w", err)
	}

	if s.reconciler != nil {
		// Best effort, failed pushes are queued for later flush.
		_ = s.reconciler.Push(ctx, *f)
	}

	output := fillUpOutput(f)
	jsonBytes, _ := json.MarshalIndent(output, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}, output, nil
}

// ListFillUpsOutput defines output for the list_fill_ups tool.
type ListFillUpsOutput struct {
	FillUps []FillUpOutput `json:"fillups"`
	Count   int            `json:"count"`
}

// ListFillUpsInput is empty but required for type.
type ListFillUpsInput struct{}

func (s *Server) registerListFillUpsTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_fill_ups",
		Description: "List all recorded fill-ups, newest first.",
		InputSchema: map[string]interface{}{
			"type": "object",
		},
	}, s.handleListFillUps)
}

func (s *Server) handleListFillUps(_ context.Context, req *mcp.CallToolRequest, input ListFillUpsInput) (*mcp.CallToolResult, ListFillUpsOutput, error) {
	state := s.engine.Snapshot()
	models.SortFillUpsByDate(state.FillUps)

	outputs := make([]FillUpOutput, 0, len(state.FillUps))
	for i := len(state.FillUps) - 1; i >= 0; i-- {
		outputs = append(outputs, fillUpOutput(&state.FillUps[i]))
	}

	output := ListFillUpsOutput{
		FillUps: outputs,
		Count:   len(outputs),
	}

	jsonBytes, _ := json.MarshalIndent(output, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}, output, nil
}

// RemoveFillUpInput defines input for the remove_fill_up tool.
type RemoveFillUpInput struct {
	ID string `json:"id"`
}

// RemoveFillUpOutput defines output for the remove_fill_up tool.
type RemoveFillUpOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) registerRemoveFillUpTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "remove_fill_up",
		Description: "Remove a fill-up by id and recompute efficiency. This cannot be undone.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "UUID of the fill-up to remove",
				},
			},
			"required": []string{"id"},
		},
	}, s.handleRemoveFillUp)
}

func (s *Server) handleRemoveFillUp(ctx context.Context, req *mcp.CallToolRequest, input RemoveFillUpInput) (*mcp.CallToolResult, RemoveFillUpOutput, error) {
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, RemoveFillUpOutput{}, fmt.Errorf("invalid fill-up id: %w", err)
	}

	if err := s.engine.DeleteFillUp(id); err != nil {
		return nil, RemoveFillUpOutput{}, fmt.Errorf("failed to remove fill-up: %w", err)
	}

	if s.reconciler != nil {
		_ = s.reconciler.Delete(ctx, id)
	}

	output := RemoveFillUpOutput{
		Success: true,
		Message: fmt.Sprintf("Removed fill-up %s", input.ID),
	}

	jsonBytes, _ := json.MarshalIndent(output, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}, output, nil
}

// SyncNowInput is empty but required for type.
type SyncNowInput struct{}

// SyncNowOutput defines output for the sync_now tool.
type SyncNowOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

func (s *Server) registerSyncNowTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "sync_now",
		Description: "Pull the remote fill-up history, replacing local history and recomputing efficiency.",
		InputSchema: map[string]interface{}{
			"type": "object",
		},
	}, s.handleSyncNow)
}

func (s *Server) handleSyncNow(ctx context.Context, req *mcp.CallToolRequest, input SyncNowInput) (*mcp.CallToolResult, SyncNowOutput, error) {
	if s.reconciler == nil {
		return nil, SyncNowOutput{}, fmt.Errorf("sync is not configured")
	}

	if err := s.reconciler.Pull(ctx); err != nil {
		return nil, SyncNowOutput{}, fmt.Errorf("sync failed: %w", err)
	}

	state := s.engine.Snapshot()
	output := SyncNowOutput{
		Success: true,
		Message: fmt.Sprintf("Synced %d fill-ups", len(state.FillUps)),
		Count:   len(state.FillUps),
	}

	jsonBytes, _ := json.MarshalIndent(output, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}, output, nil
}
