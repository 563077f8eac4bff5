package requeststats

import (
	"context"

	requesthandler "attendance-backend/lib/request"
	"attendance-backend/models"
	requestapimodels "attendance-backend/models/api/request"
)

// Provider is the read side projection over the request list. Everything is
// recomputed per call, nothing is cached here.
type Provider interface {
	StatusStats(ctx context.Context) (requestapimodels.StatusStatsView, error)
	WorkModeStats(ctx context.Context) (requestapimodels.WorkModeStatsView, error)
	PendingByKind(ctx context.Context, kind models.RequestKind) ([]requestapimodels.RequestView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		requests: requesthandler.Instance,
	}
}

type impl struct {
	requests requesthandler.Provider
}

func (i impl) StatusStats(ctx context.Context) (requestapimodels.StatusStatsView, error) {
	list, _, err := i.requests.List(ctx, requestapimodels.RequestFilter{})
	if err != nil {
		return requestapimodels.StatusStatsView{}, err
	}
	result := requestapimodels.StatusStatsView{Total: len(list)}
	for _, item := range list {
		switch item.Status {
		case models.RequestStatusPending:
			result.Pending++
		case models.RequestStatusApproved:
			result.Approved++
		case models.RequestStatusRejected:
			result.Rejected++
		}
	}
	return result, nil
}

// WorkModeStats counts the requested modes of work mode change requests.
func (i impl) WorkModeStats(ctx context.Context) (requestapimodels.WorkModeStatsView, error) {
	list, _, err := i.requests.List(ctx, requestapimodels.RequestFilter{Kind: models.RequestKindWorkModeChange})
	if err != nil {
		return requestapimodels.WorkModeStatsView{}, err
	}
	result := requestapimodels.WorkModeStatsView{Total: len(list)}
	for _, item := range list {
		switch item.RequestedMode {
		case models.WorkModeInOffice:
			result.InOffice++
		case models.WorkModeSemiRemote:
			result.SemiRemote++
		case models.WorkModeFullyRemote:
			result.FullyRemote++
		}
	}
	return result, nil
}

func (i impl) PendingByKind(ctx context.Context, kind models.RequestKind) ([]requestapimodels.RequestView, error) {
	list, _, err := i.requests.List(ctx, requestapimodels.RequestFilter{
		Status: models.RequestStatusPending,
		Kind:   kind,
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}
