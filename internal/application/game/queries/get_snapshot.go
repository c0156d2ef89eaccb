package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/cardquest-go/internal/application/mediator"
	"github.com/andrescamacho/cardquest-go/internal/application/simulation"
)

// GetSnapshotQuery reads the current board, roster and stock
type GetSnapshotQuery struct{}

// Snapshotter is implemented by the simulation engine
type Snapshotter interface {
	Snapshot() simulation.Snapshot
}

// GetSnapshotHandler answers GetSnapshotQuery
type GetSnapshotHandler struct {
	source Snapshotter
}

func NewGetSnapshotHandler(source Snapshotter) *GetSnapshotHandler {
	return &GetSnapshotHandler{source: source}
}

func (h *GetSnapshotHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GetSnapshotQuery); !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	snap := h.source.Snapshot()
	return &snap, nil
}
