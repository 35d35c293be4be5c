// Package workflow implements the procurement request lifecycle: the ordered
// stage catalog, the transition rules, and in-memory collection queries.
// It is pure value logic and performs no I/O of its own.
package workflow

import (
	"proctrack/internal/models"
)

// linearStages is the canonical workflow order. Position in this slice is the
// stage's position in the catalog.
var linearStages = []models.Stage{
	models.StagePendingAssignment,
	models.StageAssigned,
	models.StageProductSourcing,
	models.StagePOCreated,
	models.StageFinanceApproval,
	models.StageMDApproval,
	models.StagePaymentProcessing,
	models.StageAwaitingDelivery,
	models.StageCompleted,
}

// StageInfo holds display metadata for a stage. Icon is an abstract tag; the
// renderer decides what it means.
type StageInfo struct {
	Stage    models.Stage `json:"stage"`
	Label    string       `json:"label"`
	Icon     string       `json:"icon"`
	Position int          `json:"position"`
}

var stageInfos = map[models.Stage]StageInfo{
	models.StagePendingAssignment: {models.StagePendingAssignment, "Pending Assignment", "clock", 0},
	models.StageAssigned:          {models.StageAssigned, "Assigned to Officer", "user-check", 1},
	models.StageProductSourcing:   {models.StageProductSourcing, "Product Sourcing", "search", 2},
	models.StagePOCreated:         {models.StagePOCreated, "Purchase Order Created", "file-text", 3},
	models.StageFinanceApproval:   {models.StageFinanceApproval, "Finance Approval", "dollar-sign", 4},
	models.StageMDApproval:        {models.StageMDApproval, "MD Approval", "shield", 5},
	models.StagePaymentProcessing: {models.StagePaymentProcessing, "Payment Processing", "credit-card", 6},
	models.StageAwaitingDelivery:  {models.StageAwaitingDelivery, "Awaiting Delivery", "truck", 7},
	models.StageCompleted:         {models.StageCompleted, "Completed", "check-circle", 8},

	// Terminal override stages. They carry no position in the linear order.
	models.StageDeclined:  {models.StageDeclined, "Declined", "x-circle", -1},
	models.StageCancelled: {models.StageCancelled, "Cancelled", "x", -1},
}

// Stages returns the nine linear workflow stages in catalog order.
func Stages() []models.Stage {
	out := make([]models.Stage, len(linearStages))
	copy(out, linearStages)
	return out
}

// StageInfos returns display metadata for the nine linear stages in
// catalog order.
func StageInfos() []StageInfo {
	out := make([]StageInfo, 0, len(linearStages))
	for _, s := range linearStages {
		out = append(out, stageInfos[s])
	}
	return out
}

// PositionOf returns the 0-based position of the stage in the linear order,
// or -1 for stages outside it (override targets, unknown/legacy values).
func PositionOf(s models.Stage) int {
	if info, ok := stageInfos[s]; ok {
		return info.Position
	}
	return -1
}

// DisplayInfoFor returns display metadata for any stage value. Unknown stages
// map to a fallback entry rather than failing so legacy data still renders;
// its Position is -1.
func DisplayInfoFor(s models.Stage) StageInfo {
	if info, ok := stageInfos[s]; ok {
		return info
	}
	return StageInfo{Stage: s, Label: string(s), Icon: "help-circle", Position: -1}
}

// LabelOf returns the human label for a stage.
func LabelOf(s models.Stage) string {
	return DisplayInfoFor(s).Label
}

// Known reports whether s is a recognized stage, linear or override.
func Known(s models.Stage) bool {
	_, ok := stageInfos[s]
	return ok
}

// IsTerminal reports whether s has no further forward transition.
func IsTerminal(s models.Stage) bool {
	return s == models.StageCompleted || IsOverrideStage(s)
}

// IsOverrideStage reports whether s is reachable only through an
// administrative override.
func IsOverrideStage(s models.Stage) bool {
	return s == models.StageDeclined || s == models.StageCancelled
}
